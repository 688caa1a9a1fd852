package adapter

// CredentialGenerator isolates hotspot credential generation so the
// entropy/charset policy can be strengthened without touching the
// checkout orchestrator. Implementations must use a cryptographically
// adequate random source.
type CredentialGenerator interface {
	Username() (string, error)
	Password() (string, error)
}
