// File: cmd/seed/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"hotspot-ticketing/internal/config"
	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	pg "hotspot-ticketing/internal/infra/db/postgres"
)

const demoSlug = "cafe-demo"

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	tenantRepo := pg.NewTenantRepo(pool)
	profileRepo := pg.NewProfileRepo(pool)

	// If the demo tenant already exists, do nothing.
	if t, err := tenantRepo.FindBySlug(ctx, nil, demoSlug); err == nil {
		fmt.Printf("tenant %q already present (id=%s). No changes.\n", t.Slug, t.ID)
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Fatalf("lookup tenant: %v", err)
	}

	tenant, err := model.NewTenant(uuid.NewString(), "demo-user", "Café Demo", demoSlug)
	if err != nil {
		log.Fatalf("build tenant: %v", err)
	}
	tenant.PrimaryColor = "#1d4ed8"
	tenant.SecondaryColor = "#f59e0b"
	if err := tenantRepo.Save(ctx, nil, tenant); err != nil {
		log.Fatalf("save tenant: %v", err)
	}
	fmt.Printf("seeded tenant: %s (id=%s)\n", tenant.Slug, tenant.ID)

	gb := func(n int64) *int64 { v := n << 30; return &v }
	secs := func(n int64) *int64 { return &n }

	seed := []struct {
		Name     string
		Price    int64 // minor units (MXN cents)
		Duration *int64
		Data     *int64
		Speed    string
		MkProf   string
	}{
		{"1 Hora", 2_000, secs(3_600), gb(1), "2M/2M", "1hora"},
		{"1 Día", 5_000, secs(86_400), gb(5), "5M/5M", "1dia"},
		{"1 Semana", 15_000, secs(604_800), nil, "5M/5M", "1semana"},
	}

	for _, s := range seed {
		p, err := model.NewProfile(uuid.NewString(), tenant.ID, s.Name, s.MkProf, s.Price, "MXN")
		if err != nil {
			log.Fatalf("build profile %q: %v", s.Name, err)
		}
		p.Duration = s.Duration
		p.DataLimit = s.Data
		p.SpeedLimit = s.Speed
		p.Description = fmt.Sprintf("Acceso a Internet - %s", s.Name)
		if err := profileRepo.Save(ctx, nil, p); err != nil {
			log.Fatalf("save profile %q: %v", s.Name, err)
		}
		fmt.Printf("seeded profile: %s (id=%s, price=%d MXN cents)\n", p.Name, p.ID, p.Price)
	}

	fmt.Println("Seeding complete.")
}
