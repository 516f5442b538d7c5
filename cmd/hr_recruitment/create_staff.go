package main

import (
	"fmt"
	"os"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/config"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/server"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/types"
	"github.com/spf13/cobra"
)

var (
	staffEmail string
	staffName  string
)

var createStaffCmd = &cobra.Command{
	Use:   "create-staff",
	Short: "Create an HR staff account",
	Long:  `Create an HR staff account. The password is read from STAFF_PASSWORD so it never appears in shell history.`,
	RunE:  runCreateStaff,
}

func init() {
	createStaffCmd.Flags().StringVar(&staffEmail, "email", "", "Staff email address (required)")
	createStaffCmd.Flags().StringVar(&staffName, "name", "", "Staff display name (required)")
	_ = createStaffCmd.MarkFlagRequired("email")
	_ = createStaffCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(createStaffCmd)
}

func runCreateStaff(cmd *cobra.Command, _ []string) error {
	req := &types.RegisterRequest{
		Name:     staffName,
		Email:    staffEmail,
		Password: os.Getenv("STAFF_PASSWORD"),
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid staff account (is STAFF_PASSWORD set?): %w", err)
	}

	pwCfg, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}

	database, err := connectDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	user, err := server.NewUserService(database, pwCfg).Register(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created staff user %s (%s)\n", user.Email, user.ID)
	return nil
}
