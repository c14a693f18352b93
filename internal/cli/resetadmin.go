package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pedrohqs/atrio/internal/db"
	"github.com/pedrohqs/atrio/internal/models"
	"github.com/pedrohqs/atrio/internal/security"
)

// RunResetAdminCommand creates the bootstrap admin account, or resets its
// password when it already exists. The temporary password is printed once
// and must be changed on first login.
func RunResetAdminCommand(dbPath string, email string) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	repos := db.NewRepositories(database)

	temporaryPassword, err := security.TemporaryPassword(12)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	user, err := repos.Users.FindByNormalizedEmail(normalizedEmail)
	switch {
	case err == nil:
		user.PasswordHash = string(passwordHash)
		user.MustChangePassword = true
		user.IsActive = true
		if err := repos.Users.Save(&user); err != nil {
			return fmt.Errorf("update admin password: %w", err)
		}
		fmt.Printf("Password reset for %s\n", normalizedEmail)
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Email:              normalizedEmail,
			PasswordHash:       string(passwordHash),
			FullName:           "Administrador",
			Role:               models.RoleAdmin,
			IsActive:           true,
			MustChangePassword: true,
		}
		if err := repos.Users.Create(&user); err != nil {
			return fmt.Errorf("create admin account: %w", err)
		}
		fmt.Printf("Admin account created for %s\n", normalizedEmail)
	default:
		return fmt.Errorf("load user: %w", err)
	}

	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	fmt.Println("The password must be changed on next login.")

	return nil
}
