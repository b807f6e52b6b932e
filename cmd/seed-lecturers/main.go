package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/config"
	"github.com/lectorank/lectorank-backend/internal/database"
	"github.com/lectorank/lectorank-backend/internal/logger"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/lectorank/lectorank-backend/internal/repository"
)

// seedLecturers is a starter roster spanning basic and specialized
// departments, plus one department the classifier does not recognize.
var seedLecturers = []struct {
	name       string
	department string
}{
	{"Elena Ivanova", "Mathematics"},
	{"Pyotr Sokolov", "Physics"},
	{"Anna Volkova", "Chemistry"},
	{"Mikhail Orlov", "History"},
	{"Olga Morozova", "Philosophy"},
	{"Dmitri Lebedev", "Foreign Languages"},
	{"Sergei Kuznetsov", "Physical Education"},
	{"Natalia Pavlova", "Computer Science"},
	{"Viktor Smirnov", "Software Engineering"},
	{"Irina Fedorova", "Information Security"},
	{"Alexei Popov", "Applied Informatics"},
	{"Marina Egorova", "Control Systems"},
	{"Andrei Nikolaev", "Radio Engineering"},
	{"Tatiana Belova", "Economics"},
	{"Roman Vasiliev", "Management"},
	{"Galina Titova", "Astronomy Club"},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	lecturerRepo := repository.NewLecturerRepository(pool)

	fmt.Printf("=== Seeding %d Lecturers ===\n", len(seedLecturers))

	created := 0
	for i, seed := range seedLecturers {
		lect := &model.Lecturer{
			ID:         uuid.New(),
			Name:       seed.name,
			Email:      fmt.Sprintf("lecturer%02d@lectorank.example", i+1),
			Department: seed.department,
			IsActive:   true,
		}
		if err := lecturerRepo.Create(ctx, lect); err != nil {
			log.Error().Err(err).Str("name", seed.name).Msg("Failed to create lecturer")
			continue
		}
		created++
	}

	fmt.Printf("Done. Created %d of %d lecturers.\n", created, len(seedLecturers))
}
