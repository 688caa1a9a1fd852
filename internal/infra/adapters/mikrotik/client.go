// File: internal/infra/adapters/mikrotik/client.go
package mikrotik

import (
	"context"
	"crypto/tls"
	"fmt"
	"strconv"
	"time"

	"github.com/go-routeros/routeros/v3"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/adapter"
	"hotspot-ticketing/internal/infra/metrics"
)

var _ adapter.RouterProvisioner = (*Provisioner)(nil)

// Provisioner talks the RouterOS API to manage /ip/hotspot/user entries.
//
// Every operation dials the tenant's router, runs one command sequence, and
// closes the connection on all exit paths. Connections are not pooled; a
// ticket activation is one connection, one mutation.
type Provisioner struct{}

func NewProvisioner() *Provisioner { return &Provisioner{} }

func (p *Provisioner) dial(ctx context.Context, rs model.RouterSettings) (*routeros.Client, error) {
	addr := fmt.Sprintf("%s:%d", rs.Host, rs.Port)
	timeout := rs.Timeout()
	var (
		c   *routeros.Client
		err error
	)
	if rs.UseSSL {
		c, err = routeros.DialTLSTimeout(addr, rs.Username, rs.Password, &tls.Config{InsecureSkipVerify: true}, timeout)
	} else {
		c, err = routeros.DialTimeout(addr, rs.Username, rs.Password, timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", domain.ErrProvisioning, addr, err)
	}
	return c, nil
}

func (p *Provisioner) CreateAccount(ctx context.Context, rs model.RouterSettings, acc adapter.NewAccount) (string, error) {
	start := time.Now()
	id, err := p.createAccount(ctx, rs, acc)
	metrics.ObserveRouterOp("create", time.Since(start).Milliseconds(), err == nil)
	return id, err
}

func (p *Provisioner) createAccount(ctx context.Context, rs model.RouterSettings, acc adapter.NewAccount) (string, error) {
	c, err := p.dial(ctx, rs)
	if err != nil {
		return "", err
	}
	defer c.Close()

	args := []string{
		"/ip/hotspot/user/add",
		"=name=" + acc.Username,
		"=password=" + acc.Password,
		"=profile=" + acc.ProfileName,
	}
	// Unlimited means the parameter is absent, never zero.
	if acc.UptimeLimit != nil && *acc.UptimeLimit > 0 {
		args = append(args, "=limit-uptime="+strconv.FormatInt(*acc.UptimeLimit, 10)+"s")
	}
	if acc.ByteLimit != nil && *acc.ByteLimit > 0 {
		args = append(args, "=limit-bytes-total="+strconv.FormatInt(*acc.ByteLimit, 10))
	}
	if acc.Comment != "" {
		args = append(args, "=comment="+acc.Comment)
	}

	reply, err := c.RunContext(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("%w: add hotspot user %s: %v", domain.ErrProvisioning, acc.Username, err)
	}
	return reply.Done.Map["ret"], nil
}

func (p *Provisioner) RemoveAccount(ctx context.Context, rs model.RouterSettings, username string) error {
	start := time.Now()
	err := p.removeAccount(ctx, rs, username)
	metrics.ObserveRouterOp("remove", time.Since(start).Milliseconds(), err == nil)
	return err
}

func (p *Provisioner) removeAccount(ctx context.Context, rs model.RouterSettings, username string) error {
	c, err := p.dial(ctx, rs)
	if err != nil {
		return err
	}
	defer c.Close()

	reply, err := c.RunContext(ctx, "/ip/hotspot/user/print", "?name="+username)
	if err != nil {
		return fmt.Errorf("%w: find hotspot user %s: %v", domain.ErrProvisioning, username, err)
	}
	if len(reply.Re) == 0 {
		return domain.ErrNotFoundOnDevice
	}

	id := reply.Re[0].Map[".id"]
	if _, err := c.RunContext(ctx, "/ip/hotspot/user/remove", "=.id="+id); err != nil {
		return fmt.Errorf("%w: remove hotspot user %s: %v", domain.ErrProvisioning, username, err)
	}
	return nil
}

func (p *Provisioner) TestConnection(ctx context.Context, rs model.RouterSettings) error {
	c, err := p.dial(ctx, rs)
	if err != nil {
		return err
	}
	return c.Close()
}
