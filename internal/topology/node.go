package topology

import "github.com/vk/rspecgen/internal/params"

// ClientID is the client id of the one node every profile requests.
const ClientID = "node"

// Node describes the compute node to provision.
type Node struct {
	ClientID      string
	Exclusive     bool
	HardwareType  string
	DiskImage     string
	Commands      []Command
	RoleBinding   *RoleBinding
	RemoteDisplay bool
}

// Command is a shell command the node runs at boot, in slice order.
type Command struct {
	Name    string
	Shell   string
	Command string
}

// RoleBinding ties the node to an automation role and its playbook.
type RoleBinding struct {
	Role         string
	RolePath     string
	Playbook     string
	PlaybookPath string
}

// Override is a variable injected into the bound role.
type Override struct {
	Name  string
	Value string
	// When is the predicate that selected the override.
	When params.Predicate
}
