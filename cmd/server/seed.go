package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nhle/workspace-management/internal/model"
	"github.com/nhle/workspace-management/internal/store"
)

// newSeedCommand creates a demo workspace with two users, a project,
// and a default workflow so the orchestration endpoint can be exercised
// immediately.
func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
				cfg.Server.DBPath = dbPath
			}

			st, err := store.NewSQLiteStore(cfg.Server.DBPath)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer st.Close()

			ctx := context.Background()

			ws, err := st.CreateWorkspace(ctx, model.Workspace{
				ID:   uuid.NewString(),
				Slug: "demo",
				Name: "Demo Workspace",
			})
			if err != nil {
				return fmt.Errorf("creating workspace: %w", err)
			}

			alice, err := st.CreateUser(ctx, model.User{
				ID:          uuid.NewString(),
				Email:       "alice@example.com",
				DisplayName: "Alice",
				IsActive:    true,
			})
			if err != nil {
				return fmt.Errorf("creating user: %w", err)
			}
			bob, err := st.CreateUser(ctx, model.User{
				ID:          uuid.NewString(),
				Email:       "bob@example.com",
				DisplayName: "Bob",
				IsActive:    true,
			})
			if err != nil {
				return fmt.Errorf("creating user: %w", err)
			}

			project, err := st.CreateProject(ctx, model.Project{
				ID:          uuid.NewString(),
				WorkspaceID: ws.ID,
				Name:        "Getting Started",
				Identifier:  "START",
				Description: "A starter project",
				CreatedByID: alice.ID,
			})
			if err != nil {
				return fmt.Errorf("creating project: %w", err)
			}

			for _, u := range []model.User{alice, bob} {
				if err := st.AddProjectMember(ctx, model.ProjectMember{
					ID:        uuid.NewString(),
					ProjectID: project.ID,
					MemberID:  u.ID,
					Role:      model.RoleMember,
				}); err != nil {
					return fmt.Errorf("adding member: %w", err)
				}
			}

			states := []struct {
				name  string
				group string
			}{
				{"Backlog", model.StateGroupBacklog},
				{"Todo", model.StateGroupUnstarted},
				{"In Progress", model.StateGroupStarted},
				{"Done", model.StateGroupCompleted},
				{"Cancelled", model.StateGroupCancelled},
			}
			for _, s := range states {
				if _, err := st.CreateState(ctx, model.State{
					ID:          uuid.NewString(),
					WorkspaceID: ws.ID,
					ProjectID:   project.ID,
					Name:        s.name,
					Color:       model.DefaultStateColor,
					Group:       s.group,
				}); err != nil {
					return fmt.Errorf("creating state %s: %w", s.name, err)
				}
			}

			fmt.Printf("seeded workspace %q with project %q and users %s, %s\n",
				ws.Slug, project.Name, alice.Email, bob.Email)
			return nil
		},
	}

	cmd.Flags().String("db", "", "sqlite database path (overrides config)")
	return cmd
}
