// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import (
	"testing"
)

func TestVariable(t *testing.T) {
	t.Run("new variables are set", func(t *testing.T) {
		v := NewVariable(21.5)
		if !v.IsSet() || v.Value() != 21.5 {
			t.Errorf("expected set variable with 21.5, got %v/%t", v.Value(), v.IsSet())
		}
		if v.String() != "21.5" {
			t.Errorf("expected string 21.5, got %s", v)
		}
	})
	t.Run("zero variables print as unset", func(t *testing.T) {
		var v VarInt
		if v.IsSet() || v.String() != Unset || v.Ptr() != nil {
			t.Errorf("expected unset variable, got %q", v.String())
		}
	})
	t.Run("set and reset", func(t *testing.T) {
		var v VarInt64
		v.Set(0)
		if !v.IsSet() || v.String() != "0" {
			t.Errorf("expected zero to be a set value, got %q", v.String())
		}
		v.Reset()
		if v.IsSet() {
			t.Error("expected variable to be unset after reset")
		}
	})
	t.Run("from ok follows the flag", func(t *testing.T) {
		if FromOK(3, false).IsSet() {
			t.Error("expected variable to be unset")
		}
		p := FromOK(3, true).Ptr()
		if p == nil || *p != 3 {
			t.Errorf("expected pointer to 3, got %v", p)
		}
	})
}
