// ABOUTME: CLI commands for Charm-based cloud backup.
// ABOUTME: Supports link, status, push, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/internal/charm"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Back up fitlog data to Charm Cloud",
	Long: `Back up fitlog data to Charm Cloud.

The local SQLite database stays authoritative; sync mirrors a snapshot
of compounds, doses, and entries into Charm KV, E2E encrypted with
your SSH key. The server never sees your unencrypted data.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     fitlog sync link

  2. Push your data:
     fitlog sync push

  3. Check status:
     fitlog sync status

COMMANDS:

  link        Link this device to your Charm account
  status      Show sync status and mirrored record counts
  push        Mirror the full local dataset to the cloud
  wipe        Delete cloud and local mirror data (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.

Example:
  fitlog sync link`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("\n✓ Device linked to Charm")
		fmt.Println("Run 'fitlog sync push' to back up your data.")

		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.GetClient()
		if err != nil {
			color.Yellow("Charm client not available: %v", err)
			fmt.Println("\nRun 'fitlog sync link' to connect to Charm.")
			return nil
		}
		defer func() { _ = client.Close() }()

		id, err := client.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'fitlog sync link' to connect to Charm.")
			return nil
		}

		fmt.Println("Charm ID:", id)
		fmt.Println("Server:", charm.Host())
		fmt.Println()

		compounds, doses, entries, err := client.Counts()
		if err != nil {
			return fmt.Errorf("failed to read mirror: %w", err)
		}

		color.Green("✓ Connected to Charm")
		fmt.Printf("  Mirrored compounds: %d\n", compounds)
		fmt.Printf("  Mirrored doses:     %d\n", doses)
		fmt.Printf("  Mirrored entries:   %d\n", entries)

		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Mirror local data to Charm Cloud",
	Long: `Mirror the full local dataset to Charm Cloud.

Every compound, dose, and entry is written to the KV mirror and synced
once at the end. Dose keys embed the compound and date, so repeated
pushes overwrite rather than duplicate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.GetClient()
		if err != nil {
			return fmt.Errorf("failed to initialize charm client: %w", err)
		}
		defer func() { _ = client.Close() }()

		data, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to read local data: %w", err)
		}

		if err := client.PushSnapshot(data.Compounds, data.Entries); err != nil {
			return fmt.Errorf("push failed: %w", err)
		}

		doseCount := 0
		for _, c := range data.Compounds {
			doseCount += len(c.Doses)
		}

		color.Green("✓ Pushed to Charm Cloud")
		fmt.Printf("  Compounds: %d  Doses: %d  Entries: %d\n",
			len(data.Compounds), doseCount, len(data.Entries))

		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete cloud and local mirror data",
	Long: `Delete all cloud backups and the local KV mirror.

This is a DESTRUCTIVE operation for the mirror, but your SQLite
database is untouched. Push again to re-create the backup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will PERMANENTLY DELETE all cloud backups of your fitlog data.")
		fmt.Print("Type 'wipe' to confirm: ")
		var confirm string
		_, _ = fmt.Scanln(&confirm)
		if confirm != "wipe" {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := kv.Wipe("fitlog")
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Mirror wiped successfully")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)

		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
