// Command seed loads the default detailing catalog and an admin account into MongoDB.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"detailing/config"
	"detailing/database"
	"detailing/database/repository"
	"detailing/models"
	"detailing/services/catalog"
	"detailing/services/user"
)

var defaultCatalog = []models.ServiceInput{
	{Name: "Exterior Wash", Description: "Hand wash, wheels and tire shine", Price: 45, Duration: 60},
	{Name: "Interior Detail", Description: "Vacuum, steam clean and wipe down", Price: 120, Duration: 120},
	{Name: "Wax & Seal", Description: "Paint sealant applied after wash", Price: 80, Duration: 45},
	{Name: "Engine Bay Clean", Price: 60, Duration: 30},
	{Name: "Ceramic Coating", Description: "Single-layer ceramic protection", Price: 650, Duration: 360},
}

func main() {
	adminEmail := flag.String("admin-email", "", "Register this email as an admin when it does not exist")
	adminPassword := flag.String("admin-password", "", "Password for -admin-email")
	flag.Parse()

	config.LoadConfig()
	if strings.HasPrefix(config.AppConfig.DatabaseURL, "memory://") {
		log.Fatal("seed needs a MongoDB DATABASE_URL")
	}
	database.InitDB()
	defer database.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalogSvc := &catalog.DefaultCatalogService{Repo: repository.NewMongoCatalogRepo()}
	existing, err := catalogSvc.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list services: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, s := range existing {
		have[strings.ToLower(s.Name)] = true
	}

	inserted := 0
	for _, in := range defaultCatalog {
		if have[strings.ToLower(in.Name)] {
			continue
		}
		if _, err := catalogSvc.Create(ctx, in); err != nil {
			log.Fatalf("Failed to insert service %q: %v", in.Name, err)
		}
		inserted++
	}
	fmt.Printf("Inserted %d services (%d already present)\n", inserted, len(defaultCatalog)-inserted)

	if *adminEmail == "" {
		return
	}
	users := &user.DefaultUserService{
		Repo:        repository.NewMongoUserRepo(),
		AdminEmails: append(config.AppConfig.Admins(), *adminEmail),
	}
	resp, err := users.RegisterUser(ctx, models.RegisterRequest{Name: "Admin", Email: *adminEmail, Password: *adminPassword})
	if errors.Is(err, user.ErrEmailTaken) {
		fmt.Printf("Admin %s already exists\n", *adminEmail)
		return
	}
	if err != nil {
		log.Fatalf("Failed to register admin: %v", err)
	}
	fmt.Printf("Registered admin %s (%s)\n", *adminEmail, resp.ID)
}
