package library

import (
	"reflect"
	"testing"
)

func TestReconcileSet(t *testing.T) {
	cases := []struct {
		name     string
		current  []string
		replace  []string
		add      []string
		remove   []string
		want     []string
		wantEdit bool
	}{
		{
			name:     "no changes requested",
			current:  []string{"a", "b"},
			wantEdit: false,
		},
		{
			name:     "add new member",
			current:  []string{"a"},
			add:      []string{"b"},
			want:     []string{"a", "b"},
			wantEdit: true,
		},
		{
			name:     "adding a present member is a no-op",
			current:  []string{"a", "b"},
			add:      []string{"b"},
			want:     []string{"a", "b"},
			wantEdit: true,
		},
		{
			name:     "removing an absent member is a no-op",
			current:  []string{"a"},
			remove:   []string{"zzz"},
			want:     []string{"a"},
			wantEdit: true,
		},
		{
			name:     "add then remove in one call",
			current:  []string{"x", "y"},
			add:      []string{"z"},
			remove:   []string{"x"},
			want:     []string{"y", "z"},
			wantEdit: true,
		},
		{
			name:     "replacement wins over add and remove",
			current:  []string{"a", "b"},
			replace:  []string{"only"},
			add:      []string{"ignored"},
			remove:   []string{"only"},
			want:     []string{"only"},
			wantEdit: true,
		},
		{
			name:     "empty non-nil replacement clears the set",
			current:  []string{"a", "b"},
			replace:  []string{},
			want:     []string{},
			wantEdit: true,
		},
		{
			name:     "order of survivors preserved",
			current:  []string{"c", "a", "b"},
			remove:   []string{"a"},
			want:     []string{"c", "b"},
			wantEdit: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, edited := reconcileSet(c.current, c.replace, c.add, c.remove)
			if edited != c.wantEdit {
				t.Fatalf("edited = %v, want %v", edited, c.wantEdit)
			}
			if !edited {
				return
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestReconcileSet_Idempotent(t *testing.T) {
	first, _ := reconcileSet([]string{"a"}, nil, []string{"b"}, nil)
	second, _ := reconcileSet(first, nil, []string{"b"}, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated add diverged: %v then %v", first, second)
	}
}
