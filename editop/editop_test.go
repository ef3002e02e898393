package editop_test

import (
	"testing"

	"github.com/corrective-parsing/alcep/editop"
)

func TestCompareInsertionsScattered(t *testing.T) {
	cases := []struct {
		a, b string
		want editop.Verdict
	}{
		{"", "abc", editop.Smaller},
		{"abc", "", editop.Bigger},
		{"ac", "abc", editop.Smaller},
		{"abc", "abc", editop.Equal},
		{"ba", "abc", editop.Incomparable},
		{"xyz", "abc", editop.Incomparable},
	}
	for _, c := range cases {
		got, err := editop.Compare(editop.Insert{Word: c.a}, editop.Insert{Word: c.b})
		if err != nil {
			t.Fatalf("Compare(%q,%q) returned error: %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("Compare(Ins(%q), Ins(%q)) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestCompareReadDeleteReplace(t *testing.T) {
	cases := []struct {
		a, b editop.Op
		want editop.Verdict
	}{
		{editop.Read{Letter: "a"}, editop.Read{Letter: "a"}, editop.Equal},
		{editop.Read{Letter: "a"}, editop.Delete{Letter: "a"}, editop.Smaller},
		{editop.Delete{Letter: "a"}, editop.Read{Letter: "a"}, editop.Bigger},
		{editop.Read{Letter: "a"}, editop.Replace{Letter: "a", By: "b"}, editop.Smaller},
		{editop.Replace{Letter: "a", By: "b"}, editop.Read{Letter: "a"}, editop.Bigger},
		{editop.Delete{Letter: "a"}, editop.Replace{Letter: "a", By: "b"}, editop.Incomparable},
		{editop.Replace{Letter: "a", By: "b"}, editop.Replace{Letter: "a", By: "b"}, editop.Equal},
		{editop.Replace{Letter: "a", By: "b"}, editop.Replace{Letter: "a", By: "c"}, editop.Incomparable},
		{editop.Delete{Letter: "a"}, editop.Delete{Letter: "b"}, editop.Incomparable},
	}
	for _, c := range cases {
		got, err := editop.Compare(c.a, c.b)
		if err != nil {
			t.Fatalf("Compare(%v,%v) returned error: %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("Compare(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestCompareInsertVsNonInsertIsError(t *testing.T) {
	_, err := editop.Compare(editop.Insert{Word: "a"}, editop.Read{Letter: "a"})
	if err != editop.ErrIncomparableKind {
		t.Fatalf("expected ErrIncomparableKind, got %v", err)
	}
}
