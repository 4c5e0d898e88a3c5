package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	appModels "github.com/yigit/javamaster/internal/app/models"
	appRepos "github.com/yigit/javamaster/internal/app/repositories"
	"github.com/yigit/javamaster/internal/pkg/auth"
)

// AdminAccount is the admin created on first start when none exists
type AdminAccount struct {
	Email    string
	Password string
}

// DefaultCourses is the catalog created on an empty database
func DefaultCourses(now time.Time) []*appModels.Course {
	batch := now.AddDate(0, 0, 14).Truncate(24 * time.Hour)
	return []*appModels.Course{
		{
			Title:           "Core Java Bootcamp",
			Description:     "Six weeks of live classes taking you from Java basics to building and testing real applications.",
			OriginalPrice:   decimal.NewFromInt(4999),
			DiscountedPrice: decimal.NewFromInt(999),
			SeatsAvailable:  20,
			BatchStartDate:  batch,
			Features: []string{
				"Live interactive sessions",
				"Weekly coding assignments",
				"Placement-focused interview prep",
				"Certificate of completion",
			},
			Modules: []appModels.CourseModule{
				{Name: "Java Fundamentals", Topics: []string{"JVM and JDK", "Types and operators", "Control flow"}},
				{Name: "Object-Oriented Programming", Topics: []string{"Classes and objects", "Inheritance", "Interfaces"}},
				{Name: "Collections and Generics", Topics: []string{"List, Set, Map", "Generic types", "Streams"}},
				{Name: "Exceptions and I/O", Topics: []string{"Checked exceptions", "Files", "Serialization"}},
				{Name: "Concurrency", Topics: []string{"Threads", "Executors", "Synchronization"}},
				{Name: "Capstone Project"},
			},
		},
		{
			Title:           "Data Structures and Algorithms in Java",
			Description:     "Problem solving for coding interviews, implemented in Java.",
			OriginalPrice:   decimal.NewFromInt(5999),
			DiscountedPrice: decimal.NewFromInt(1499),
			SeatsAvailable:  20,
			BatchStartDate:  batch.AddDate(0, 1, 0),
			Features: []string{
				"200+ practice problems",
				"Mock interviews",
				"Doubt-clearing sessions",
			},
			Modules: []appModels.CourseModule{
				{Name: "Complexity Analysis"},
				{Name: "Arrays and Strings"},
				{Name: "Linked Lists, Stacks and Queues"},
				{Name: "Trees and Graphs"},
				{Name: "Dynamic Programming"},
			},
		},
	}
}

// CreateDefaultData creates the default catalog and the admin account if they don't exist.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, admin AdminAccount, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (courses/admin)...")
	var finalErr error

	for _, course := range DefaultCourses(time.Now().UTC()) {
		created, err := repos.CourseRepository.CreateIfMissing(ctx, course)
		if err != nil {
			lgr.Error().Err(err).Str("title", course.Title).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if created {
			lgr.Info().Str("title", course.Title).Msg("Default course created")
		}
	}

	if err := createAdmin(ctx, repos.AdminRepository, admin, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func createAdmin(ctx context.Context, admins *appRepos.AdminRepository, account AdminAccount, lgr zerolog.Logger) error {
	if account.Email == "" || account.Password == "" {
		lgr.Info().Msg("No default admin configured, skipping")
		return nil
	}

	exists, err := admins.Exists(ctx, account.Email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking default admin")
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(account.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	if err := admins.Create(ctx, &appModels.AdminUser{
		Email:        account.Email,
		FullName:     "Administrator",
		PasswordHash: hash,
	}); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}

	lgr.Info().Str("email", account.Email).Msg("Default admin created")
	return nil
}
