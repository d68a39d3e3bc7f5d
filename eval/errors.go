package eval

import (
	"fmt"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/diag"
)

func resolutionErr(rng ast.Range, format string, args ...any) *diag.Diagnostic {
	return &diag.Diagnostic{Kind: diag.Resolution, Summary: fmt.Sprintf(format, args...), Subject: rng}
}

func typeErr(rng ast.Range, format string, args ...any) *diag.Diagnostic {
	return &diag.Diagnostic{Kind: diag.Type, Summary: fmt.Sprintf(format, args...), Subject: rng}
}

func rangeErr(rng ast.Range, format string, args ...any) *diag.Diagnostic {
	return &diag.Diagnostic{Kind: diag.RangeKind, Summary: fmt.Sprintf(format, args...), Subject: rng}
}

func semanticErr(rng ast.Range, format string, args ...any) *diag.Diagnostic {
	return &diag.Diagnostic{Kind: diag.Semantic, Summary: fmt.Sprintf(format, args...), Subject: rng}
}
