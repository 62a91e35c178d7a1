package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/sciencelabshs/neonlink/auth"
	"github.com/sciencelabshs/neonlink/config"
	"github.com/sciencelabshs/neonlink/database"
	"github.com/spf13/cobra"
)

var resetPasswordFlags struct {
	Username string
	Password string
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset a user's password from the command line",
	Long:  `Reset a user's password without a login session. Useful when the only admin is locked out.`,
	Example: `neonlink reset-password --username alice --password newsecret
`,
	Run: runResetPassword,
}

func init() {
	resetPasswordCmd.Flags().StringVarP(&resetPasswordFlags.Username, "username", "u", "", "Username of the account to reset")
	resetPasswordCmd.Flags().StringVarP(&resetPasswordFlags.Password, "password", "p", "", "New password")
	_ = resetPasswordCmd.MarkFlagRequired("username")
	_ = resetPasswordCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(resetPasswordCmd)
}

func runResetPassword(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	ctx := cmd.Context()
	user, err := db.GetByUsername(ctx, resetPasswordFlags.Username)
	if err != nil {
		log.Fatalf("failed to find user: %v", err)
	}

	hash, err := auth.NewBcryptHasher().Hash(resetPasswordFlags.Password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	if err := db.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		log.Fatalf("failed to update password: %v", err)
	}

	log.Info("password reset", "username", user.Username)
}
