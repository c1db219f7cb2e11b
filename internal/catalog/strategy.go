package catalog

// StrategyKind tags the bootstrap strategy of a profile.
type StrategyKind string

const (
	StrategyAnsible StrategyKind = "ansible"
	StrategyScript  StrategyKind = "script"
)

// Strategy is a closed union: *Ansible or *Script.
type Strategy interface {
	Kind() StrategyKind
	isStrategy()
}

// Ansible bootstraps the node with four shell phases and then hands over to
// an automation role. The phases run strictly in order: Head creates the
// working directories, the two installs fetch the dependency collection,
// Tail runs the automation that needs it.
type Ansible struct {
	Head                *Template
	CollectionInstall   *Template
	RequirementsInstall *Template
	Tail                *Template
	Role                Role
}

// Kind implements Strategy.
func (*Ansible) Kind() StrategyKind { return StrategyAnsible }
func (*Ansible) isStrategy()        {}

// Phases returns the four phase templates in execution order.
func (a *Ansible) Phases() []*Template {
	return []*Template{a.Head, a.CollectionInstall, a.RequirementsInstall, a.Tail}
}

// Role is the automation role and its single playbook.
type Role struct {
	Name     string
	Path     string
	Playbook Playbook
}

// Playbook is a playbook reference inside a role.
type Playbook struct {
	Name string
	Path string
}

// Script runs the deploy template once per component, in declaration order,
// when building from source.
type Script struct {
	Deploy     *Template
	Components []Component
}

// Kind implements Strategy.
func (*Script) Kind() StrategyKind { return StrategyScript }
func (*Script) isStrategy()        {}

// Component is one piece of software built by the deploy script, with the
// build reference used by default.
type Component struct {
	Name string
	Ref  string
}
