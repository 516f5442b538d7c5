package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	skillName      string
	departmentName string
)

var createSkillCmd = &cobra.Command{
	Use:   "create-skill",
	Short: "Add a skill job postings can require",
	Long:  `Add a skill to the catalog. An existing skill with the same name is returned unchanged.`,
	RunE:  runCreateSkill,
}

var createDepartmentCmd = &cobra.Command{
	Use:   "create-department",
	Short: "Add a department job postings and hires can belong to",
	Long:  `Add a department. An existing department with the same name is returned unchanged.`,
	RunE:  runCreateDepartment,
}

func init() {
	createSkillCmd.Flags().StringVar(&skillName, "name", "", "Skill name (required)")
	_ = createSkillCmd.MarkFlagRequired("name")
	createDepartmentCmd.Flags().StringVar(&departmentName, "name", "", "Department name (required)")
	_ = createDepartmentCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(createSkillCmd, createDepartmentCmd)
}

func catalogName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("--name must not be blank")
	}
	if len(name) > 100 {
		return "", fmt.Errorf("--name must be at most 100 characters")
	}
	return name, nil
}

func runCreateSkill(cmd *cobra.Command, _ []string) error {
	name, err := catalogName(skillName)
	if err != nil {
		return err
	}
	database, err := connectDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	skill, err := database.CreateSkill(cmd.Context(), name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "skill %s (%s)\n", skill.Name, skill.ID)
	return nil
}

func runCreateDepartment(cmd *cobra.Command, _ []string) error {
	name, err := catalogName(departmentName)
	if err != nil {
		return err
	}
	database, err := connectDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	dept, err := database.CreateDepartment(cmd.Context(), name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "department %s (%s)\n", dept.Name, dept.ID)
	return nil
}
