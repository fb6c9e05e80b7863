// seed-admin crea el usuario gerente inicial para poder entrar al sistema.
//
// Uso: go run ./cmd/seed-admin -name "María Gerente" -login 12345678900 -password <pass>
// Lee la conexión a la base de las mismas variables de entorno que la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/trainmaster-app/trainmaster-api/internal/application/auth"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/infrastructure/postgres"
	"github.com/trainmaster-app/trainmaster-api/pkg/config"
)

func main() {
	name := flag.String("name", "", "nombre del gerente")
	login := flag.String("login", "", "login (CPF)")
	password := flag.String("password", "", "contraseña (mínimo 8 caracteres)")
	email := flag.String("email", "", "email (opcional)")
	flag.Parse()

	if *name == "" || *login == "" || len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "uso: seed-admin -name <nombre> -login <CPF> -password <mín. 8 caracteres>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	if existing, err := userRepo.GetByLogin(ctx, *login); err != nil {
		fmt.Fprintf(os.Stderr, "consultar login: %v\n", err)
		os.Exit(1)
	} else if existing != nil {
		fmt.Fprintf(os.Stderr, "el login %s ya existe\n", *login)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear contraseña: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         *name,
		Email:        *email,
		Login:        *login,
		PasswordHash: hash,
		Role:         entity.RoleManager,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		fmt.Fprintf(os.Stderr, "crear usuario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("gerente creado: %s (login %s)\n", user.Name, user.Login)
}
