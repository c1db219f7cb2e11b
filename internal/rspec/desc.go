package rspec

import (
	"github.com/vk/rspecgen/internal/topology"
	"github.com/vk/rspecgen/internal/tour"
)

// RequestDesc is the serializable form of a compiled request. It has no
// pointers into compiler state and encodes the same way every time.
type RequestDesc struct {
	Profile     string         `json:"profile" yaml:"profile"`
	Fingerprint string         `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Node        NodeDesc       `json:"node" yaml:"node"`
	Overrides   []OverrideDesc `json:"overrides" yaml:"overrides"`
	Tour        TourDesc       `json:"tour" yaml:"tour"`
}

// NodeDesc describes the node.
type NodeDesc struct {
	ClientID      string           `json:"client_id" yaml:"client_id"`
	Exclusive     bool             `json:"exclusive" yaml:"exclusive"`
	HardwareType  string           `json:"hardware_type" yaml:"hardware_type"`
	DiskImage     string           `json:"disk_image" yaml:"disk_image"`
	Commands      []CommandDesc    `json:"commands" yaml:"commands"`
	RoleBinding   *RoleBindingDesc `json:"role_binding,omitempty" yaml:"role_binding,omitempty"`
	RemoteDisplay bool             `json:"remote_display" yaml:"remote_display"`
}

// CommandDesc is one boot command.
type CommandDesc struct {
	Name    string `json:"name" yaml:"name"`
	Shell   string `json:"shell" yaml:"shell"`
	Command string `json:"command" yaml:"command"`
}

// RoleBindingDesc is the role bound to the node.
type RoleBindingDesc struct {
	Role         string `json:"role" yaml:"role"`
	RolePath     string `json:"role_path,omitempty" yaml:"role_path,omitempty"`
	Playbook     string `json:"playbook" yaml:"playbook"`
	PlaybookPath string `json:"playbook_path" yaml:"playbook_path"`
}

// OverrideDesc is one role variable.
type OverrideDesc struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// TourDesc is the bundled documentation.
type TourDesc struct {
	Description  string   `json:"description" yaml:"description"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	Steps        []string `json:"steps" yaml:"steps"`
}

// Transform converts compiler output into its serializable description.
// Empty lists are kept as empty, not nil, so json and yaml print them.
func Transform(profile, fingerprint string, node *topology.Node, overrides []topology.Override, t *tour.Tour) RequestDesc {
	rd := RequestDesc{
		Profile:     profile,
		Fingerprint: fingerprint,
		Node: NodeDesc{
			ClientID:      node.ClientID,
			Exclusive:     node.Exclusive,
			HardwareType:  node.HardwareType,
			DiskImage:     node.DiskImage,
			Commands:      make([]CommandDesc, 0, len(node.Commands)),
			RemoteDisplay: node.RemoteDisplay,
		},
		Overrides: make([]OverrideDesc, 0, len(overrides)),
		Tour: TourDesc{
			Description:  t.Description,
			Instructions: t.Instructions,
			Steps:        append([]string{}, t.Steps...),
		},
	}

	for _, c := range node.Commands {
		rd.Node.Commands = append(rd.Node.Commands, CommandDesc(c))
	}
	if rb := node.RoleBinding; rb != nil {
		rd.Node.RoleBinding = &RoleBindingDesc{
			Role:         rb.Role,
			RolePath:     rb.RolePath,
			Playbook:     rb.Playbook,
			PlaybookPath: rb.PlaybookPath,
		}
	}
	for _, o := range overrides {
		rd.Overrides = append(rd.Overrides, OverrideDesc{Name: o.Name, Value: o.Value})
	}
	return rd
}
