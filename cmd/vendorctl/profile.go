package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/vendorctl/internal/cli"
	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/ops"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your vendor profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile and payout account",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	p, err := ops.NewProfile(a.backend, a.opts).Load(cmd.Context())
	if err != nil {
		return err
	}
	return a.write(p, func() *cli.Table { return profileTable(p) })
}

func profileTable(p model.UserProfile) *cli.Table {
	t := cli.NewTable()
	row := func(label, value string) {
		if value == "" {
			value = cli.Gray("-")
		}
		t.AddRow(cli.Bold(label), value)
	}
	row("Name", p.FullName())
	row("Email", p.Email)
	row("Phone", p.Phone)
	row("Store", p.StoreName)
	row("Address", p.Address)
	row("Bio", p.Bio)
	row("Bank", p.BankName)
	row("Account", strings.TrimSpace(p.AccountNumber+" "+p.AccountName))
	return t
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile",
	Long: `Edit your profile. Only the fields you pass are sent.

Examples:
  vendorctl profile edit --store-name "Ada's Fabrics"
  vendorctl profile edit --phone 08031234567 --address "12 Marina, Lagos"
  vendorctl profile edit -i                  # open in $EDITOR`,
	Args: cobra.NoArgs,
	RunE: runProfileEdit,
}

var (
	profileFirstName     string
	profileLastName      string
	profilePhone         string
	profileStoreName     string
	profileAddress       string
	profileBio           string
	profileBankName      string
	profileBankCode      string
	profileAccountNumber string
	profileAccountName   string
	profileInteractive   bool
)

func init() {
	f := profileEditCmd.Flags()
	f.StringVar(&profileFirstName, "first-name", "", "first name")
	f.StringVar(&profileLastName, "last-name", "", "last name")
	f.StringVar(&profilePhone, "phone", "", "phone number")
	f.StringVar(&profileStoreName, "store-name", "", "store name")
	f.StringVar(&profileAddress, "address", "", "address")
	f.StringVar(&profileBio, "bio", "", "short store description")
	f.StringVar(&profileBankName, "bank-name", "", "payout bank name")
	f.StringVar(&profileBankCode, "bank-code", "", "payout bank code")
	f.StringVar(&profileAccountNumber, "account-number", "", "payout account number")
	f.StringVar(&profileAccountName, "account-name", "", "payout account holder")
	f.BoolVarP(&profileInteractive, "interactive", "i", false, "edit in $EDITOR")
	profileCmd.AddCommand(profileEditCmd)
}

// profileDoc is the editable form of a profile.
type profileDoc struct {
	FirstName     string `yaml:"first_name"`
	LastName      string `yaml:"last_name"`
	Phone         string `yaml:"phone_number"`
	StoreName     string `yaml:"store_name"`
	Address       string `yaml:"address"`
	Bio           string `yaml:"bio"`
	BankName      string `yaml:"bank_name"`
	BankCode      string `yaml:"bank_code"`
	AccountNumber string `yaml:"account_number"`
	AccountName   string `yaml:"account_name"`
}

func newProfileDoc(p model.UserProfile) profileDoc {
	return profileDoc{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Phone:         p.Phone,
		StoreName:     p.StoreName,
		Address:       p.Address,
		Bio:           p.Bio,
		BankName:      p.BankName,
		BankCode:      p.BankCode,
		AccountNumber: p.AccountNumber,
		AccountName:   p.AccountName,
	}
}

// diff returns a patch holding the fields of d that differ from base.
func (d profileDoc) diff(base profileDoc) model.ProfilePatch {
	var patch model.ProfilePatch
	set := func(dst **string, after, before string) {
		after = strings.TrimSpace(after)
		if after != before {
			*dst = &after
		}
	}
	set(&patch.FirstName, d.FirstName, base.FirstName)
	set(&patch.LastName, d.LastName, base.LastName)
	set(&patch.Phone, d.Phone, base.Phone)
	set(&patch.StoreName, d.StoreName, base.StoreName)
	set(&patch.Address, d.Address, base.Address)
	set(&patch.Bio, d.Bio, base.Bio)
	set(&patch.BankName, d.BankName, base.BankName)
	set(&patch.BankCode, d.BankCode, base.BankCode)
	set(&patch.AccountNumber, d.AccountNumber, base.AccountNumber)
	set(&patch.AccountName, d.AccountName, base.AccountName)
	return patch
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	profile := ops.NewProfile(a.backend, a.opts)
	current, err := profile.Load(ctx)
	if err != nil {
		return err
	}

	var patch model.ProfilePatch
	if profileInteractive {
		base := newProfileDoc(current)
		edited := base
		if err := cli.EditYAML(ctx, base, &edited); err != nil {
			if errors.Is(err, cli.ErrUnchanged) {
				fmt.Println("No changes made.")
				return nil
			}
			return err
		}
		patch = edited.diff(base)
	} else {
		f := cmd.Flags()
		str := func(name, value string) *string {
			if !f.Changed(name) {
				return nil
			}
			v := strings.TrimSpace(value)
			return &v
		}
		patch = model.ProfilePatch{
			FirstName:     str("first-name", profileFirstName),
			LastName:      str("last-name", profileLastName),
			Phone:         str("phone", profilePhone),
			StoreName:     str("store-name", profileStoreName),
			Address:       str("address", profileAddress),
			Bio:           str("bio", profileBio),
			BankName:      str("bank-name", profileBankName),
			BankCode:      str("bank-code", profileBankCode),
			AccountNumber: str("account-number", profileAccountNumber),
			AccountName:   str("account-name", profileAccountName),
		}
	}

	updated, err := profile.Edit(ctx, patch)
	if err != nil {
		return err
	}
	fmt.Printf("Updated profile: %s\n", updated.FullName())
	return nil
}

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List payout banks and verify accounts",
}

var banksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the banks accepted for payouts",
	Args:  cobra.NoArgs,
	RunE:  runBanksList,
}

func init() {
	banksCmd.AddCommand(banksListCmd)
	rootCmd.AddCommand(banksCmd)
}

func runBanksList(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	banks, err := ops.NewProfile(a.backend, a.opts).Banks(cmd.Context())
	if err != nil {
		return err
	}
	return a.write(banks, func() *cli.Table {
		t := cli.NewTable("ID", "CODE", "NAME")
		for _, b := range banks {
			t.AddRow(fmt.Sprintf("%d", b.ID), b.Code, b.Name)
		}
		return t
	})
}

var banksVerifyCmd = &cobra.Command{
	Use:   "verify <account-number>",
	Short: "Look up the holder of a bank account",
	Long: `Look up the holder of a bank account before using it for payouts.

--bank takes a bank code or a unique prefix of the bank name. With --save
the verified account becomes your payout account.

Examples:
  vendorctl banks verify 0123456789 --bank 058
  vendorctl banks verify 0123456789 --bank guar --save`,
	Args: cobra.ExactArgs(1),
	RunE: runBanksVerify,
}

var (
	verifyBank string
	verifySave bool
)

func init() {
	banksVerifyCmd.Flags().StringVarP(&verifyBank, "bank", "b", "", "bank code or name")
	banksVerifyCmd.Flags().BoolVar(&verifySave, "save", false, "save as your payout account")
	banksCmd.AddCommand(banksVerifyCmd)
}

func runBanksVerify(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	profile := ops.NewProfile(a.backend, a.opts)

	banks, err := profile.Banks(ctx)
	if err != nil {
		return err
	}
	bank, err := resolveBank(banks, verifyBank)
	if err != nil {
		return err
	}

	acct, err := profile.VerifyAccount(ctx, model.AccountVerificationRequest{
		AccountNumber: strings.TrimSpace(args[0]),
		BankCode:      bank.Code,
	})
	if err != nil {
		return err
	}

	if verifySave {
		if _, err := profile.Load(ctx); err != nil {
			return err
		}
		_, err := profile.Edit(ctx, model.ProfilePatch{
			BankName:      &bank.Name,
			BankCode:      &bank.Code,
			AccountNumber: &acct.AccountNumber,
			AccountName:   &acct.AccountName,
		})
		if err != nil {
			return err
		}
	}

	if !a.tableOutput() {
		return a.write(acct, nil)
	}
	fmt.Printf("%s %s: %s\n", bank.Name, acct.AccountNumber, cli.Bold(acct.AccountName))
	if verifySave {
		fmt.Println("Saved as your payout account.")
	}
	return nil
}

// resolveBank finds a bank by exact code or by unique name prefix.
func resolveBank(banks []model.Bank, ref string) (model.Bank, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Bank{}, &cli.ValidationError{Field: "bank", Message: "required (code or name)"}
	}
	names := make([]string, 0, len(banks))
	for _, b := range banks {
		if b.Code == ref {
			return b, nil
		}
		names = append(names, b.Name)
	}
	name, err := cli.MatchChoice("bank", ref, names)
	if err != nil {
		return model.Bank{}, err
	}
	for _, b := range banks {
		if b.Name == name {
			return b, nil
		}
	}
	return model.Bank{}, &cli.NotFoundError{Type: "bank", ID: ref}
}
