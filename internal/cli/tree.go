// Package cli declares the keel command tree.
package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/actions/account"
	cfgactions "github.com/footprint-tools/keel/internal/actions/config"
	"github.com/footprint-tools/keel/internal/actions/logs"
	"github.com/footprint-tools/keel/internal/actions/theme"
	"github.com/footprint-tools/keel/internal/actions/tokens"
	"github.com/footprint-tools/keel/internal/actions/transaction"
	"github.com/footprint-tools/keel/internal/dispatchers"
	"github.com/footprint-tools/keel/internal/domain"
)

// ProgramName is the first element of every command path.
const ProgramName = "keel"

type (
	global  = domain.Global
	netAcct = domain.Networked[domain.AccountRef]
	netXfer = domain.Networked[domain.Transfer]
)

// BuildTree declares every node and returns the checked tree.
func BuildTree() (*dispatchers.Tree, error) {
	reg := dispatchers.NewRegistry[global](ProgramName)

	reg.Add(
		dispatchers.Sequence[global, global]{
			ID:          "keel",
			Summary:     "A local multi-network account ledger",
			Description: "Every argument can be given on the command line or answered interactively.",
			Fields:      rootFields,
			Derive: func(g global, s dispatchers.Scope) global {
				g.Verbose = dispatchers.Value[bool](s, "verbose")
				g.Quiet = dispatchers.Value[bool](s, "quiet")
				return g
			},
			Next: "command",
		},
		dispatchers.Choice[global]{
			ID:      "command",
			Summary: "What are you going to do?",
			Prompt:  "What are you going to do?",
			Variants: []dispatchers.Variant{
				{Name: "account", Description: "Manage accounts", Target: "account"},
				{Name: "tokens", Description: "Send and inspect tokens", Target: "tokens"},
				{Name: "transaction", Description: "Look up transactions", Target: "transaction"},
				{Name: "config", Description: "Show or change settings", Target: "config"},
				{Name: "logs", Description: "Inspect the keel log file", Target: "logs"},
				{Name: "version", Description: "Show the keel version", Target: "version"},
			},
		},
		dispatchers.Sequence[global, global]{
			ID:      "version",
			Summary: "Show the keel version",
			Action:  actions.ShowVersion,
		},
	)

	addAccount(reg)
	addTokens(reg)
	addTransaction(reg)
	addConfig(reg)
	addTheme(reg)
	addLogs(reg)

	return reg.Build("keel")
}

// networkConfig is the `network-config <network>` step that closes most
// paths. The network defaults to the default_network setting when set.
func networkConfig[P domain.Scoped](id, next string, action func(ctx context.Context, c domain.Networked[P]) error) dispatchers.Sequence[P, domain.Networked[P]] {
	return dispatchers.Sequence[P, domain.Networked[P]]{
		ID:      id,
		Keyword: "network-config",
		Summary: "Select the network",
		Fields: []dispatchers.Field[P]{
			{
				Name:        "network",
				Positional:  true,
				Prompt:      "What is the name of the network?",
				Description: "Network name from the networks setting",
				Parse:       dispatchers.ParseString,
				Options: func(p P) []dispatchers.Option {
					names := p.Globals().Networks()
					opts := make([]dispatchers.Option, len(names))
					for i, name := range names {
						opts[i] = dispatchers.Option{Name: name}
					}
					return opts
				},
				Default: func(p P) (any, bool) {
					value, _ := p.Globals().App.Config.Get("default_network")
					value = strings.TrimSpace(value)
					return value, value != ""
				},
			},
		},
		Validate: func(p P, b *dispatchers.Builder) error {
			network := dispatchers.BuilderValue[string](b, "network")
			known := p.Globals().Networks()
			if !slices.Contains(known, network) {
				return dispatchers.Invalid(
					fmt.Sprintf("unknown network %q (known: %s)", network, strings.Join(known, ", ")),
					"network",
				)
			}
			return nil
		},
		Derive: func(p P, s dispatchers.Scope) domain.Networked[P] {
			return domain.Networked[P]{Parent: p, Network: dispatchers.Value[string](s, "network")}
		},
		Next:   next,
		Action: action,
	}
}

func addAccount(reg *dispatchers.Registry) {
	reg.Add(
		dispatchers.Choice[global]{
			ID:      "account",
			Summary: "Manage accounts",
			Prompt:  "What do you want to do with an account?",
			Variants: []dispatchers.Variant{
				{Name: "view-account-summary", Description: "View balance and recent transactions", Target: "account.view"},
				{Name: "create-account", Description: "Create a new account", Target: "account.create"},
				{Name: "delete-account", Description: "Delete an account and move its balance", Target: "account.delete"},
				{Name: "list-accounts", Description: "List the accounts of a network", Target: "account.list"},
			},
		},

		// view-account-summary <account-id> network-config <network> (now | at-block-height <height>)
		dispatchers.Sequence[global, domain.AccountRef]{
			ID:      "account.view",
			Summary: "View balance and recent transactions",
			Fields: []dispatchers.Field[global]{
				accountField[global]("account-id", "What account ID do you need to view?", "Account to view"),
			},
			Derive: func(g global, s dispatchers.Scope) domain.AccountRef {
				return domain.AccountRef{Global: g, AccountID: dispatchers.Value[string](s, "account-id")}
			},
			Next: "account.view.network",
		},
		networkConfig[domain.AccountRef]("account.view.network", "account.view.block", nil),
		dispatchers.Choice[netAcct]{
			ID:      "account.view.block",
			Summary: "Choose the block to view",
			Prompt:  "Choose block for view:",
			Variants: []dispatchers.Variant{
				{Name: "now", Description: "View properties in the final block", Target: "account.view.now"},
				{Name: "at-block-height", Description: "View properties in a height-selected block", Target: "account.view.at"},
			},
		},
		dispatchers.Sequence[netAcct, domain.BlockView]{
			ID:      "account.view.now",
			Summary: "View the latest block",
			Derive: func(p netAcct, _ dispatchers.Scope) domain.BlockView {
				return domain.BlockView{Networked: p}
			},
			Action: account.ViewSummary,
		},
		dispatchers.Sequence[netAcct, domain.BlockView]{
			ID:      "account.view.at",
			Summary: "View a block by height",
			Fields: []dispatchers.Field[netAcct]{
				{
					Name:        "height",
					Positional:  true,
					Prompt:      "Type the block height:",
					Description: "Block height",
					Parse:       dispatchers.ParseInt,
					Check:       positiveHeight,
				},
			},
			Derive: func(p netAcct, s dispatchers.Scope) domain.BlockView {
				return domain.BlockView{Networked: p, Height: dispatchers.Value[int64](s, "height")}
			},
			Action: account.ViewSummary,
		},

		// create-account <new-account-id> --display-name --initial-balance network-config <network>
		dispatchers.Sequence[global, domain.NewAccount]{
			ID:      "account.create",
			Summary: "Create a new account",
			Fields: []dispatchers.Field[global]{
				accountField[global]("new-account-id", "What is the new account ID?", "Account to create"),
				{
					Name:        "display-name",
					Prompt:      "What is the display name?",
					Description: "Human-readable name",
					ValueHint:   "<name>",
					Parse:       dispatchers.ParseString,
					Suggest: func(_ global, b *dispatchers.Builder) string {
						return suggestDisplayName(dispatchers.BuilderValue[string](b, "new-account-id"))
					},
				},
				{
					Name:        "initial-balance",
					Prompt:      "What is the initial balance?",
					Description: "Tokens credited at creation (defaults to the initial_balance setting)",
					ValueHint:   "<amount>",
					Parse:       parseAmount,
					Default: func(g global) (any, bool) {
						value, _ := g.App.Config.Get("initial_balance")
						if value == "" {
							return nil, false
						}
						amount, err := domain.ParseAmount(value)
						return amount, err == nil
					},
				},
			},
			Derive: func(g global, s dispatchers.Scope) domain.NewAccount {
				return domain.NewAccount{
					Global:         g,
					AccountID:      dispatchers.Value[string](s, "new-account-id"),
					DisplayName:    dispatchers.Value[string](s, "display-name"),
					InitialBalance: dispatchers.Value[domain.Amount](s, "initial-balance"),
				}
			},
			Next: "account.create.network",
		},
		networkConfig[domain.NewAccount]("account.create.network", "", account.Create),

		// delete-account <account-id> --beneficiary <id> network-config <network>
		dispatchers.Sequence[global, domain.AccountDeletion]{
			ID:      "account.delete",
			Summary: "Delete an account and move its balance",
			Fields: []dispatchers.Field[global]{
				accountField[global]("account-id", "What account ID do you want to delete?", "Account to delete"),
				{
					Name:        "beneficiary",
					Prompt:      "What is the beneficiary account ID?",
					Description: "Account that receives the remaining balance",
					ValueHint:   "<account-id>",
					Parse:       parseAccountID,
				},
			},
			Validate: func(_ global, b *dispatchers.Builder) error {
				if dispatchers.BuilderValue[string](b, "beneficiary") == dispatchers.BuilderValue[string](b, "account-id") {
					return dispatchers.Invalid("the beneficiary must differ from the deleted account", "beneficiary")
				}
				return nil
			},
			Derive: func(g global, s dispatchers.Scope) domain.AccountDeletion {
				return domain.AccountDeletion{
					Global:      g,
					AccountID:   dispatchers.Value[string](s, "account-id"),
					Beneficiary: dispatchers.Value[string](s, "beneficiary"),
				}
			},
			Next: "account.delete.network",
		},
		networkConfig[domain.AccountDeletion]("account.delete.network", "", account.Delete),

		// list-accounts network-config <network>
		dispatchers.Sequence[global, global]{
			ID:      "account.list",
			Summary: "List the accounts of a network",
			Next:    "account.list.network",
		},
		networkConfig[global]("account.list.network", "", account.List),
	)
}

func addTokens(reg *dispatchers.Registry) {
	reg.Add(
		// tokens <owner-account-id> (send ... | view-balance ...)
		dispatchers.Sequence[global, domain.Owner]{
			ID:      "tokens",
			Summary: "Send and inspect tokens",
			Fields: []dispatchers.Field[global]{
				accountField[global]("owner-account-id", "What is your account ID?", "Account that owns the tokens"),
			},
			Derive: func(g global, s dispatchers.Scope) domain.Owner {
				return domain.Owner{Global: g, OwnerID: dispatchers.Value[string](s, "owner-account-id")}
			},
			Next: "tokens.action",
		},
		dispatchers.Choice[domain.Owner]{
			ID:      "tokens.action",
			Summary: "Choose an action for tokens",
			Prompt:  "Select actions with tokens:",
			Variants: []dispatchers.Variant{
				{Name: "send", Description: "Transfer tokens to another account", Target: "tokens.send"},
				{Name: "view-balance", Description: "View the balance of the account", Target: "tokens.balance"},
			},
		},

		// send <receiver-account-id> <amount> [--memo] network-config <network> (sign-with-keychain | sign-later)
		dispatchers.Sequence[domain.Owner, domain.Transfer]{
			ID:      "tokens.send",
			Summary: "Transfer tokens to another account",
			Fields: []dispatchers.Field[domain.Owner]{
				accountField[domain.Owner]("receiver-account-id", "What is the receiver account ID?", "Account that receives the tokens"),
				{
					Name:        "amount",
					Positional:  true,
					Prompt:      "How many tokens do you want to transfer?",
					Description: fmt.Sprintf("Amount with up to %d decimal places", domain.AmountDecimals),
					Parse:       parseAmount,
				},
				{
					Name:        "memo",
					Short:       "m",
					Optional:    true,
					Prompt:      "Memo (optional):",
					Description: "Free-form note stored with the transfer",
					ValueHint:   "<text>",
					Parse:       dispatchers.ParseText,
				},
			},
			Validate: func(o domain.Owner, b *dispatchers.Builder) error {
				if dispatchers.BuilderValue[string](b, "receiver-account-id") == o.OwnerID {
					return dispatchers.Invalid("the receiver must differ from the owner", "receiver-account-id")
				}
				if dispatchers.BuilderValue[domain.Amount](b, "amount") <= 0 {
					return dispatchers.Invalid("the amount must be greater than zero", "amount")
				}
				return nil
			},
			Derive: func(o domain.Owner, s dispatchers.Scope) domain.Transfer {
				return domain.Transfer{
					Owner:      o,
					ReceiverID: dispatchers.Value[string](s, "receiver-account-id"),
					Amount:     dispatchers.Value[domain.Amount](s, "amount"),
					Memo:       dispatchers.Value[string](s, "memo"),
				}
			},
			Next: "tokens.send.network",
		},
		networkConfig[domain.Transfer]("tokens.send.network", "tokens.send.sign", nil),
		dispatchers.Choice[netXfer]{
			ID:      "tokens.send.sign",
			Summary: "Choose how to sign the transfer",
			Prompt:  "Select a tool for signing the transaction:",
			Variants: []dispatchers.Variant{
				{Name: tokens.MethodKeychain, Description: "Sign and submit now", Target: "tokens.send.keychain"},
				{Name: tokens.MethodSignLater, Description: "Print the unsigned transaction as YAML", Target: "tokens.send.later"},
			},
		},
		signing("tokens.send.keychain", tokens.MethodKeychain, "Sign and submit now", tokens.SignWithKeychain),
		signing("tokens.send.later", tokens.MethodSignLater, "Print the unsigned transaction", tokens.SignLater),

		// view-balance network-config <network>
		dispatchers.Sequence[domain.Owner, domain.Owner]{
			ID:      "tokens.balance",
			Summary: "View the balance of the account",
			Next:    "tokens.balance.network",
		},
		networkConfig[domain.Owner]("tokens.balance.network", "", tokens.ViewBalance),
	)
}

func signing(id, method, summary string, action func(ctx context.Context, s domain.Signing) error) dispatchers.Sequence[netXfer, domain.Signing] {
	return dispatchers.Sequence[netXfer, domain.Signing]{
		ID:      id,
		Summary: summary,
		Derive: func(p netXfer, _ dispatchers.Scope) domain.Signing {
			return domain.Signing{Networked: p, Method: method}
		},
		Action: action,
	}
}

func addTransaction(reg *dispatchers.Registry) {
	reg.Add(
		dispatchers.Choice[global]{
			ID:      "transaction",
			Summary: "Look up transactions",
			Prompt:  "What do you want to do with a transaction?",
			Variants: []dispatchers.Variant{
				{Name: "view-status", Description: "View the status of a transaction", Target: "transaction.status"},
			},
		},
		dispatchers.Sequence[global, domain.TxRef]{
			ID:      "transaction.status",
			Summary: "View the status of a transaction",
			Fields: []dispatchers.Field[global]{
				{
					Name:        "tx-hash",
					Positional:  true,
					Prompt:      "Enter the hash of the transaction you need to view:",
					Description: "Transaction hash",
					Parse:       dispatchers.ParseString,
				},
			},
			Derive: func(g global, s dispatchers.Scope) domain.TxRef {
				return domain.TxRef{Global: g, Hash: dispatchers.Value[string](s, "tx-hash")}
			},
			Next: "transaction.status.network",
		},
		networkConfig[domain.TxRef]("transaction.status.network", "", transaction.ViewStatus),
	)
}

func addConfig(reg *dispatchers.Registry) {
	reg.Add(
		dispatchers.Choice[global]{
			ID:      "config",
			Summary: "Show or change settings",
			Prompt:  "What do you want to do with the configuration?",
			Variants: []dispatchers.Variant{
				{Name: "show", Description: "Show the effective configuration", Target: "config.show"},
				{Name: "get", Description: "Print one setting", Target: "config.get"},
				{Name: "set", Description: "Change a setting", Target: "config.set"},
				{Name: "unset", Description: "Restore the default of a setting", Target: "config.unset"},
				{Name: "theme", Description: "List or pick a color theme", Target: "config.theme"},
			},
		},
		dispatchers.Sequence[global, domain.ConfigShow]{
			ID:      "config.show",
			Summary: "Show the effective configuration",
			Fields: []dispatchers.Field[global]{
				{Name: "yaml", Bool: true, Description: "Print as YAML"},
			},
			Derive: func(g global, s dispatchers.Scope) domain.ConfigShow {
				return domain.ConfigShow{Global: g, YAML: dispatchers.Value[bool](s, "yaml")}
			},
			Action: cfgactions.Show,
		},
		dispatchers.Sequence[global, domain.ConfigKeyRef]{
			ID:      "config.get",
			Summary: "Print one setting",
			Fields:  []dispatchers.Field[global]{configKeyField[global]()},
			Derive:  deriveKeyRef,
			Action:  cfgactions.Get,
		},
		dispatchers.Sequence[global, domain.ConfigAssignment]{
			ID:      "config.set",
			Summary: "Change a setting",
			Fields: []dispatchers.Field[global]{
				configKeyField[global](),
				{
					Name:        "value",
					Positional:  true,
					Prompt:      "What is the new value?",
					Description: "Value to assign",
					Parse:       dispatchers.ParseText,
					Suggest: func(g global, b *dispatchers.Builder) string {
						current, _ := g.App.Config.Get(dispatchers.BuilderValue[string](b, "key"))
						return current
					},
				},
			},
			Validate: func(_ global, b *dispatchers.Builder) error {
				key := dispatchers.BuilderValue[string](b, "key")
				if err := domain.CheckConfigValue(key, dispatchers.BuilderValue[string](b, "value")); err != nil {
					return dispatchers.Invalid(fmt.Sprintf("invalid value for %s: %v", key, err), "value")
				}
				return nil
			},
			Derive: func(g global, s dispatchers.Scope) domain.ConfigAssignment {
				return domain.ConfigAssignment{
					Global: g,
					Key:    dispatchers.Value[string](s, "key"),
					Value:  dispatchers.Value[string](s, "value"),
				}
			},
			Action: cfgactions.Set,
		},
		dispatchers.Sequence[global, domain.ConfigKeyRef]{
			ID:      "config.unset",
			Summary: "Restore the default of a setting",
			Fields:  []dispatchers.Field[global]{configKeyField[global]()},
			Derive:  deriveKeyRef,
			Action:  cfgactions.Unset,
		},
	)
}

func addTheme(reg *dispatchers.Registry) {
	reg.Add(
		dispatchers.Choice[global]{
			ID:      "config.theme",
			Summary: "List or pick a color theme",
			Prompt:  "What do you want to do with the theme?",
			Variants: []dispatchers.Variant{
				{Name: "list", Description: "List the themes with a preview", Target: "config.theme.list"},
				{Name: "set", Description: "Pick the color theme", Target: "config.theme.set"},
			},
		},
		dispatchers.Sequence[global, global]{
			ID:      "config.theme.list",
			Summary: "List the themes with a preview",
			Action:  theme.List,
		},
		dispatchers.Sequence[global, domain.ConfigAssignment]{
			ID:      "config.theme.set",
			Summary: "Pick the color theme",
			Fields: []dispatchers.Field[global]{
				{
					Name:        "theme",
					Positional:  true,
					Prompt:      "Which theme?",
					Description: "Theme name; base names follow the terminal background",
					Parse:       dispatchers.ParseString,
					Check: func(v any) error {
						if !slices.Contains(theme.Names(), v.(string)) {
							return fmt.Errorf("unknown theme %q", v)
						}
						return nil
					},
					Options: func(global) []dispatchers.Option {
						names := theme.Names()
						opts := make([]dispatchers.Option, len(names))
						for i, name := range names {
							opts[i] = dispatchers.Option{Name: name}
						}
						return opts
					},
					Suggest: func(g global, _ *dispatchers.Builder) string {
						current, _ := g.App.Config.Get("color_theme")
						return current
					},
				},
			},
			Derive: func(g global, s dispatchers.Scope) domain.ConfigAssignment {
				return domain.ConfigAssignment{Global: g, Key: "color_theme", Value: dispatchers.Value[string](s, "theme")}
			},
			Action: theme.Set,
		},
	)
}

func addLogs(reg *dispatchers.Registry) {
	reg.Add(
		dispatchers.Choice[global]{
			ID:      "logs",
			Summary: "Inspect the keel log file",
			Prompt:  "What do you want to do with the logs?",
			Variants: []dispatchers.Variant{
				{Name: "view", Description: "Show the last lines of the log", Target: "logs.view"},
				{Name: "tail", Description: "Follow the log as it grows", Target: "logs.tail"},
				{Name: "clear", Description: "Empty the log file", Target: "logs.clear"},
			},
		},
		dispatchers.Sequence[global, domain.LogView]{
			ID:      "logs.view",
			Summary: "Show the last lines of the log",
			Fields: []dispatchers.Field[global]{
				{
					Name:        "limit",
					Short:       "n",
					Optional:    true,
					Prompt:      "How many lines?",
					Description: fmt.Sprintf("Number of lines to show (default %d)", logs.DefaultLimit),
					ValueHint:   "<n>",
					Parse:       dispatchers.ParseInt,
					Check:       positiveLimit,
				},
				{Name: "json", Bool: true, Description: "Print the entries as JSON"},
			},
			Derive: func(g global, s dispatchers.Scope) domain.LogView {
				return domain.LogView{
					Global: g,
					Limit:  dispatchers.Value[int64](s, "limit"),
					JSON:   dispatchers.Value[bool](s, "json"),
				}
			},
			Action: logs.View,
		},
		dispatchers.Sequence[global, global]{
			ID:      "logs.tail",
			Summary: "Follow the log as it grows",
			Action:  logs.Tail,
		},
		dispatchers.Sequence[global, global]{
			ID:      "logs.clear",
			Summary: "Empty the log file",
			Action:  logs.Clear,
		},
	)
}

func deriveKeyRef(g global, s dispatchers.Scope) domain.ConfigKeyRef {
	return domain.ConfigKeyRef{Global: g, Key: dispatchers.Value[string](s, "key")}
}

// suggestDisplayName turns "alice-smith.testnet" into "Alice Smith".
func suggestDisplayName(id string) string {
	name, _, _ := strings.Cut(id, ".")
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
