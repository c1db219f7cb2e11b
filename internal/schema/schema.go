// Package schema holds the gohcl decoding targets for catalog files. These
// structs mirror the HCL syntax one to one; the catalog package translates
// them into its own validated model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Catalog File Structure ---

// CatalogFile is the top-level structure of a catalog file. There is no
// remain body: anything other than profile blocks is a decode error.
type CatalogFile struct {
	Profiles []*Profile `hcl:"profile,block"`
}

// Profile is one experiment profile: its parameters, images, bootstrap
// strategy, role overrides and tour.
type Profile struct {
	Name        string       `hcl:"name,label"`
	Description string       `hcl:"description,optional"`
	RunAs       string       `hcl:"run_as"`
	Images      *Images      `hcl:"images,block"`
	Parameters  []*Parameter `hcl:"parameter,block"`
	Ansible     *Ansible     `hcl:"ansible,block"`
	Script      *Script      `hcl:"script,block"`
	Overrides   []*Override  `hcl:"override,block"`
	Tour        *Tour        `hcl:"tour,block"`
}

// Images names the two disk images a profile chooses between.
type Images struct {
	Base     string `hcl:"base"`
	Prebuilt string `hcl:"prebuilt"`
}

// --- Parameters ---

// Parameter declares one configuration knob.
type Parameter struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Advanced    bool           `hcl:"advanced,optional"`
	Legal       []*LegalValue  `hcl:"legal,block"`
}

// LegalValue is one member of an enum parameter's legal set.
type LegalValue struct {
	Value string `hcl:"value,label"`
	Label string `hcl:"label,optional"`
}

// --- Strategies ---

// Command is a bootstrap command template. Run is an HCL template
// expression evaluated at compile time.
type Command struct {
	Shell string         `hcl:"shell,optional"`
	Run   hcl.Expression `hcl:"run"`
}

// Ansible is the role-driven bootstrap strategy.
type Ansible struct {
	Head                *Command `hcl:"head,block"`
	CollectionInstall   *Command `hcl:"collection_install,block"`
	RequirementsInstall *Command `hcl:"requirements_install,block"`
	Tail                *Command `hcl:"tail,block"`
	Role                *Role    `hcl:"role,block"`
}

// Role is the automation role bound to the node.
type Role struct {
	Name     string    `hcl:"name,label"`
	Path     string    `hcl:"path,optional"`
	Playbook *Playbook `hcl:"playbook,block"`
}

// Playbook is the single playbook a role runs.
type Playbook struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
}

// Script is the direct build-script strategy.
type Script struct {
	Deploy     *Command     `hcl:"deploy,block"`
	Components []*Component `hcl:"component,block"`
}

// Component is one piece of software the deploy script builds.
type Component struct {
	Name string `hcl:"name,label"`
	Ref  string `hcl:"ref"`
}

// --- Overrides and Tour ---

// Override is a role variable injected when its predicate holds.
type Override struct {
	Name  string `hcl:"name,label"`
	Value string `hcl:"value"`
	When  string `hcl:"when,optional"`
}

// Tour is the documentation bundled with the request.
type Tour struct {
	Description string      `hcl:"description"`
	Steps       []*TourStep `hcl:"step,block"`
}

// TourStep is one instructional block, included when its predicate holds.
type TourStep struct {
	Name string `hcl:"name,label"`
	When string `hcl:"when,optional"`
	Text string `hcl:"text"`
}
