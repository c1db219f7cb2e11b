// This file parses HCL type keywords (`bool`, `string`) in parameter blocks
// into cty types.

package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToCtyType converts a parameter type expression into its cty.Type.
// Only the primitives a parameter can hold are accepted.
func typeExprToCtyType(expr hcl.Expression) (cty.Type, error) {
	if expr == nil {
		return cty.NilType, fmt.Errorf("missing type")
	}

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.NilType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		switch name := v.Traversal.RootName(); name {
		case "bool":
			return cty.Bool, nil
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		default:
			return cty.NilType, fmt.Errorf("unknown primitive type %q", name)
		}

	case *hclsyntax.FunctionCallExpr:
		return cty.NilType, fmt.Errorf("collection type %s(...) is not supported for parameters", v.Name)

	default:
		return cty.NilType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}
