package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/veilbit/trishare/internal/validation"
	"github.com/veilbit/trishare/pkg/config"
	"github.com/veilbit/trishare/pkg/crypto/trishare"
	"github.com/veilbit/trishare/pkg/sharestore"
)

// openStore opens the share store at the configured path, prompting for a
// passphrase when encrypted storage is enabled.
func openStore() (*sharestore.Store, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := manager.Get()

	path, err := manager.StorePath()
	if err != nil {
		return nil, err
	}

	var opts []sharestore.Option
	if cfg.Storage.EncryptStorage {
		pass, err := readPassphrase("Store passphrase: ")
		if err != nil {
			return nil, err
		}
		if err := validation.ValidatePassphrase(pass, cfg.Security.MinPassphraseLength); err != nil {
			return nil, err
		}
		opts = append(opts, sharestore.WithPassphrase([]byte(pass)))
	}

	return sharestore.Open(path, opts...)
}

// saveToStore persists freshly split shares as a named set.
func saveToStore(name string, shares []trishare.Share) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	set := &sharestore.ShareSet{Name: name}
	for _, s := range shares {
		set.Shares = append(set.Shares, sharestore.StoredShare{Share: trishare.Encode(s)})
	}
	return store.Save(set)
}

// loadFromStore retrieves the locally held shares of a named set.
func loadFromStore(name string) ([]trishare.Share, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	set, err := store.GetByName(name)
	if err != nil {
		return nil, err
	}
	return set.HeldShares()
}

func NewStoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the local share store",
	}

	cmd.AddCommand(newStoreListCommand(), newStoreShowCommand(), newStoreDeleteCommand())
	return cmd
}

func newStoreListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored share sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sets := store.List()
			if len(sets) == 0 {
				fmt.Println("No share sets stored.")
				return nil
			}

			yellow := color.New(color.FgYellow, color.Bold)
			yellow.Println("Stored share sets:")
			for _, set := range sets {
				fmt.Printf("  %-30s %d shares  created %s\n",
					set.Name, len(set.Shares), set.Created.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newStoreShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored share set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			set, err := store.GetByName(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Name:    %s\n", set.Name)
			fmt.Printf("ID:      %s\n", set.ID)
			fmt.Printf("Created: %s\n", set.Created.Format("2006-01-02 15:04:05"))
			fmt.Println("Shares:")
			for _, stored := range set.Shares {
				status := "held"
				if stored.Distributed {
					status = "distributed"
					if stored.Location != "" {
						status += " (" + stored.Location + ")"
					}
				}
				fmt.Printf("  %-10s x=%d  %s\n", stored.Share.Type, stored.Share.X, status)
			}
			return nil
		},
	}
}

func newStoreDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored share set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			set, err := store.GetByName(args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(set.ID); err != nil {
				return err
			}

			fmt.Printf("Deleted share set %q\n", args[0])
			return nil
		},
	}
}
