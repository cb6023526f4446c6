package dispatchers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func leaf[P any](id string) Sequence[P, P] {
	return Sequence[P, P]{ID: id, Action: func(context.Context, P) error { return nil }}
}

func TestBuild_ReportsDepth(t *testing.T) {
	tree := newTestTree(t, &recorder{})
	require.Equal(t, "root", tree.Name())
	require.Equal(t, 4, tree.Depth())
}

func TestBuild_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
		want string
	}{
		{
			name: "undeclared root",
			defs: []Definition{leaf[rootCtx]("other")},
			want: `root node "root" is not declared`,
		},
		{
			name: "root context mismatch",
			defs: []Definition{leaf[aCtx]("root")},
			want: "registry root context is",
		},
		{
			name: "dangling next",
			defs: []Definition{Sequence[rootCtx, rootCtx]{ID: "root", Next: "missing"}},
			want: `links to undeclared node "missing"`,
		},
		{
			name: "neither next nor action",
			defs: []Definition{Sequence[rootCtx, rootCtx]{ID: "root"}},
			want: "exactly one of Next and Action",
		},
		{
			name: "both next and action",
			defs: []Definition{
				Sequence[rootCtx, rootCtx]{ID: "root", Next: "b", Action: func(context.Context, rootCtx) error { return nil }},
				leaf[rootCtx]("b"),
			},
			want: "exactly one of Next and Action",
		},
		{
			name: "child context mismatch",
			defs: []Definition{
				Sequence[rootCtx, rootCtx]{ID: "root", Next: "b"},
				leaf[aCtx]("b"),
			},
			want: `"root" produces dispatchers.rootCtx but "b" expects dispatchers.aCtx`,
		},
		{
			name: "missing context mapping",
			defs: []Definition{Sequence[rootCtx, aCtx]{ID: "root", Action: func(context.Context, aCtx) error { return nil }}},
			want: "no context mapping",
		},
		{
			name: "cycle",
			defs: []Definition{
				Sequence[rootCtx, rootCtx]{ID: "root", Next: "b"},
				Sequence[rootCtx, rootCtx]{ID: "b", Next: "root"},
			},
			want: "part of a cycle",
		},
		{
			name: "unreachable node",
			defs: []Definition{leaf[rootCtx]("root"), leaf[rootCtx]("orphan")},
			want: `node "orphan" is not reachable`,
		},
		{
			name: "duplicate node",
			defs: []Definition{leaf[rootCtx]("root"), leaf[rootCtx]("root")},
			want: `node "root" declared twice`,
		},
		{
			name: "empty choice",
			defs: []Definition{Choice[rootCtx]{ID: "root"}},
			want: "choice has no variants",
		},
		{
			name: "duplicate variant",
			defs: []Definition{
				Choice[rootCtx]{ID: "root", Variants: []Variant{{Name: "a", Target: "b"}, {Name: "a", Target: "b"}}},
				leaf[rootCtx]("b"),
			},
			want: `variant "a" declared twice`,
		},
		{
			name: "duplicate field",
			defs: []Definition{Sequence[rootCtx, rootCtx]{
				ID:     "root",
				Fields: []Field[rootCtx]{{Name: "a", Parse: ParseText}, {Name: "a", Parse: ParseText}},
				Action: func(context.Context, rootCtx) error { return nil },
			}},
			want: `field "a" declared twice`,
		},
		{
			name: "reserved help field",
			defs: []Definition{Sequence[rootCtx, rootCtx]{
				ID:     "root",
				Fields: []Field[rootCtx]{{Name: "help", Bool: true}},
				Action: func(context.Context, rootCtx) error { return nil },
			}},
			want: "is reserved",
		},
		{
			name: "field without parser",
			defs: []Definition{Sequence[rootCtx, rootCtx]{
				ID:     "root",
				Fields: []Field[rootCtx]{{Name: "a"}},
				Action: func(context.Context, rootCtx) error { return nil },
			}},
			want: `field "a" has no parser`,
		},
		{
			name: "short h is taken by help",
			defs: []Definition{Sequence[rootCtx, rootCtx]{
				ID:     "root",
				Fields: []Field[rootCtx]{{Name: "host", Short: "h", Parse: ParseText}},
				Action: func(context.Context, rootCtx) error { return nil },
			}},
			want: `invalid short name "h"`,
		},
		{
			name: "positional bool",
			defs: []Definition{Sequence[rootCtx, rootCtx]{
				ID:     "root",
				Fields: []Field[rootCtx]{{Name: "on", Positional: true, Bool: true}},
				Action: func(context.Context, rootCtx) error { return nil },
			}},
			want: "both positional and boolean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := NewRegistry[rootCtx]("root").Add(tt.defs...).Build("root")
			require.Nil(t, tree)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestBuild_DepthLimit(t *testing.T) {
	reg := NewRegistry[rootCtx]("deep")
	ids := make([]string, maxDepth+1)
	for i := range ids {
		ids[i] = "n" + string(rune('A'+i%26)) + string(rune('a'+i/26))
	}
	for i, id := range ids {
		if i == len(ids)-1 {
			reg.Add(leaf[rootCtx](id))
			continue
		}
		reg.Add(Sequence[rootCtx, rootCtx]{ID: id, Next: ids[i+1]})
	}

	_, err := reg.Build(ids[0])
	require.ErrorContains(t, err, "exceeds the limit")
}
