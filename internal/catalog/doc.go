// Package catalog is the immutable table of experiment profiles the
// compiler works from: parameter declarations, disk images, the bootstrap
// strategy with its command templates, role overrides and tour text.
//
// Catalogs are written in HCL. The built-in catalog is embedded in the
// binary; Load reads a file or a directory of .hcl files instead, which is
// how tests substitute fixtures. Everything is checked when the catalog is
// loaded so that compiling a validated configuration cannot fail:
//
//   - profile, parameter and override names are identifiers, and unique;
//   - every profile declares hardware_type and deploy_from_source;
//   - every `when` names a known predicate whose parameter the profile declares;
//   - every template only references the variables its position provides;
//   - exactly one strategy block (ansible or script) is present.
//
// A profile looks like:
//
//	profile "srsran-oran" {
//	  run_as = "`geni-get user_urn | cut -f4 -d+`"
//	  images { base = "..."  prebuilt = "..." }
//	  parameter "hardware_type" { type = string  default = "d430"  legal "d430" {} }
//	  ansible { head { run = "sudo -u ${user} ..." } ... role "r" { playbook "p" { path = "p.yml" } } }
//	  override "flag" { value = "true"  when = "ric_xapp" }
//	  tour { description = "..."  step "s" { text = "..." } }
//	}
package catalog
