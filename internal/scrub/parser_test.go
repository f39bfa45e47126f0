package scrub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersionedName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   VersionedName
		wantOK bool
	}{
		{
			name:   "simple part",
			input:  "bracket.prt.3",
			want:   VersionedName{Name: "bracket.prt.3", Base: "bracket", Ext: "prt", Version: 3},
			wantOK: true,
		},
		{
			name:   "greedy base keeps inner dots",
			input:  "top.level.asm.12",
			want:   VersionedName{Name: "top.level.asm.12", Base: "top.level", Ext: "asm", Version: 12},
			wantOK: true,
		},
		{
			name:   "extension case is preserved",
			input:  "Frame.PRT.1",
			want:   VersionedName{Name: "Frame.PRT.1", Base: "Frame", Ext: "PRT", Version: 1},
			wantOK: true,
		},
		{
			name:   "leading zeros",
			input:  "shaft.prt.007",
			want:   VersionedName{Name: "shaft.prt.007", Base: "shaft", Ext: "prt", Version: 7},
			wantOK: true,
		},
		{
			name:   "empty base",
			input:  ".drw.2",
			want:   VersionedName{Name: ".drw.2", Base: "", Ext: "drw", Version: 2},
			wantOK: true,
		},
		{name: "no version", input: "bracket.prt", wantOK: false},
		{name: "four char extension", input: "bracket.part.1", wantOK: false},
		{name: "two char extension", input: "bracket.pr.1", wantOK: false},
		{name: "non digit version", input: "bracket.prt.1a", wantOK: false},
		{name: "trailing dot", input: "bracket.prt.1.", wantOK: false},
		{name: "dot inside extension", input: "a.p.t.1", wantOK: false},
		{name: "version overflows int", input: "a.prt.99999999999999999999999", wantOK: false},
		{name: "plain name", input: "notes", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVersionedName(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestVersionedName_WithVersion(t *testing.T) {
	v, ok := ParseVersionedName("shaft.prt.007")
	assert.True(t, ok)

	assert.Equal(t, "shaft.prt.7", v.FileName())

	one := v.WithVersion(1)
	assert.Equal(t, "shaft.prt.1", one.Name)
	assert.Equal(t, 1, one.Version)
	assert.Equal(t, "shaft.prt.007", v.Name, "on-disk name must be kept")
}
