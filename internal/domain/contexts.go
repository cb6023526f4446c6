package domain

// Scoped is implemented by every context type threaded through the command tree.
// It exposes the process-wide state supplied by main.
type Scoped interface {
	Globals() Global
}

// Global is the root context: the application handle plus root flags.
type Global struct {
	App     *Application
	Verbose bool
	Quiet   bool
}

func (g Global) Globals() Global { return g }

// Networks returns the configured network names.
func (g Global) Networks() []string {
	value, _ := g.App.Config.Get("networks")
	return SplitNetworks(value)
}

// AccountRef names one existing account.
type AccountRef struct {
	Global
	AccountID string
}

// NewAccount carries the fields of `account create-account`.
type NewAccount struct {
	Global
	AccountID      string
	DisplayName    string
	InitialBalance Amount
}

// AccountDeletion carries the fields of `account delete-account`.
type AccountDeletion struct {
	Global
	AccountID   string
	Beneficiary string
}

// Owner is the context below `tokens <owner-account-id>`.
type Owner struct {
	Global
	OwnerID string
}

// Transfer carries the fields of `tokens <owner> send`.
type Transfer struct {
	Owner
	ReceiverID string
	Amount     Amount
	Memo       string
}

// TxRef names one transaction.
type TxRef struct {
	Global
	Hash string
}

// Networked adds the network chosen in `network-config` to a parent context.
type Networked[P Scoped] struct {
	Parent  P
	Network string
}

func (n Networked[P]) Globals() Global { return n.Parent.Globals() }

// BlockView is the context of `view-account-summary`; Height 0 means latest.
type BlockView struct {
	Networked[AccountRef]
	Height int64
}

// Signing is the context of the signing variants of `tokens send`.
type Signing struct {
	Networked[Transfer]
	Method string
}

// ConfigShow carries the fields of `config show`.
type ConfigShow struct {
	Global
	YAML bool
}

// ConfigAssignment carries the fields of `config set`.
type ConfigAssignment struct {
	Global
	Key   string
	Value string
}

// ConfigKeyRef names one config key for `config get` and `config unset`.
type ConfigKeyRef struct {
	Global
	Key string
}

// LogView carries the fields of `logs view`.
type LogView struct {
	Global
	Limit int64
	JSON  bool
}
