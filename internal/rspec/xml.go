package rspec

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// XML namespaces of the request document and its extensions.
const (
	NamespaceRSpec   = "http://www.geni.net/resources/rspec/3"
	NamespaceEmulab  = "http://www.protogeni.net/resources/rspec/ext/emulab/1"
	NamespaceAnsible = "http://www.protogeni.net/resources/rspec/ext/emulab/ansible/1"
	NamespaceTour    = "http://www.protogeni.net/resources/rspec/ext/apt-tour/1"
)

// Sliver type of the single exclusive node.
const sliverRawPC = "raw-pc"

// encoding/xml does not manage prefixes on output, so the extension
// elements and namespace declarations carry their prefix in the tag.

type xmlRSpec struct {
	XMLName      xml.Name      `xml:"rspec"`
	Xmlns        string        `xml:"xmlns,attr"`
	XmlnsEmulab  string        `xml:"xmlns:emulab,attr"`
	XmlnsAnsible string        `xml:"xmlns:ansible,attr"`
	Type         string        `xml:"type,attr"`
	Comment      string        `xml:",comment"`
	Nodes        []xmlNode     `xml:"node"`
	Roles        []xmlRole     `xml:"ansible:role"`
	Overrides    []xmlOverride `xml:"ansible:override"`
	Tour         *xmlTour      `xml:"rspec_tour"`
}

type xmlNode struct {
	ClientID     string          `xml:"client_id,attr"`
	Exclusive    bool            `xml:"exclusive,attr"`
	SliverType   xmlSliverType   `xml:"sliver_type"`
	HardwareType *xmlNamed       `xml:"hardware_type"`
	Services     *xmlServices    `xml:"services"`
	VNC          *struct{}       `xml:"emulab:vnc"`
	RoleBinding  *xmlRoleBinding `xml:"ansible:role_binding"`
}

type xmlSliverType struct {
	Name      string    `xml:"name,attr"`
	DiskImage *xmlNamed `xml:"disk_image"`
}

type xmlNamed struct {
	Name string `xml:"name,attr"`
}

type xmlServices struct {
	Execute []xmlExecute `xml:"execute"`
}

type xmlExecute struct {
	Shell   string `xml:"shell,attr"`
	Command string `xml:"command,attr"`
}

type xmlRoleBinding struct {
	Role string `xml:"role,attr"`
}

type xmlRole struct {
	Name     string      `xml:"name,attr"`
	Path     string      `xml:"path,attr,omitempty"`
	Playbook xmlPlaybook `xml:"ansible:playbook"`
}

type xmlPlaybook struct {
	Name string `xml:"name,attr"`
	Path string `xml:"path,attr"`
}

type xmlOverride struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlTour struct {
	Xmlns        string      `xml:"xmlns,attr"`
	Description  xmlMarkdown `xml:"description"`
	Instructions xmlMarkdown `xml:"instructions"`
}

// xmlMarkdown holds markdown in a CDATA section, newlines intact.
type xmlMarkdown struct {
	Type string `xml:"type,attr"`
	Text string `xml:",cdata"`
}

// toXML lays a request description out as an RSpec document.
func toXML(rd RequestDesc) xmlRSpec {
	n := rd.Node
	node := xmlNode{
		ClientID:     n.ClientID,
		Exclusive:    n.Exclusive,
		SliverType:   xmlSliverType{Name: sliverRawPC},
		HardwareType: &xmlNamed{Name: n.HardwareType},
	}
	if n.DiskImage != "" {
		node.SliverType.DiskImage = &xmlNamed{Name: n.DiskImage}
	}
	if len(n.Commands) > 0 {
		node.Services = &xmlServices{}
		for _, c := range n.Commands {
			node.Services.Execute = append(node.Services.Execute, xmlExecute{Shell: c.Shell, Command: c.Command})
		}
	}
	if n.RemoteDisplay {
		node.VNC = &struct{}{}
	}

	doc := xmlRSpec{
		Xmlns:        NamespaceRSpec,
		XmlnsEmulab:  NamespaceEmulab,
		XmlnsAnsible: NamespaceAnsible,
		Type:         "request",
		Comment:      comment(rd),
		Nodes:        []xmlNode{node},
		Tour: &xmlTour{
			Xmlns:        NamespaceTour,
			Description:  xmlMarkdown{Type: "markdown", Text: rd.Tour.Description},
			Instructions: xmlMarkdown{Type: "markdown", Text: rd.Tour.Instructions},
		},
	}

	if rb := n.RoleBinding; rb != nil {
		doc.Nodes[0].RoleBinding = &xmlRoleBinding{Role: rb.Role}
		doc.Roles = append(doc.Roles, xmlRole{
			Name:     rb.Role,
			Path:     rb.RolePath,
			Playbook: xmlPlaybook{Name: rb.Playbook, Path: rb.PlaybookPath},
		})
	}
	for _, o := range rd.Overrides {
		doc.Overrides = append(doc.Overrides, xmlOverride(o))
	}
	return doc
}

// comment is the leading document comment. XML comments may not contain "--".
func comment(rd RequestDesc) string {
	text := fmt.Sprintf(" rspecgen profile=%s fingerprint=%s ", rd.Profile, rd.Fingerprint)
	return strings.ReplaceAll(text, "--", "- -")
}
