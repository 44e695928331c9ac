// Copyright © 2026 Andrés Rodríguez Cantú acantu@tec.mx
// SPDX-License-Identifier: MIT

package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_SingleKey(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("country"))

	require.Len(t, al, 1)
	assert.Equal(t, "country", al[0].Key)
	assert.Equal(t, "country", al[0].OutputKey)
	assert.True(t, al[0].Include)
	assert.Empty(t, al[0].TransformSpec)
}

func TestSet_FullSpec(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("country:Nation:u,pct::10"))

	require.Len(t, al, 2)
	assert.Equal(t, "Nation", al[0].OutputKey)
	assert.Equal(t, "u", al[0].TransformSpec)
	assert.Equal(t, "pct", al[1].OutputKey, "empty output key mirrors the extract key")
	assert.Equal(t, "10", al[1].TransformSpec)
}

func TestSet_Exclude(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("country,!flag_code"))

	require.Len(t, al, 2)
	assert.True(t, al[0].Include)
	assert.False(t, al[1].Include)
	assert.Equal(t, "flag_code", al[1].Key)
}

func TestSet_UpdatesExisting(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("country,pct"))
	require.NoError(t, al.Set("country:Nation:u"))

	require.Len(t, al, 2, "re-specifying a default must not duplicate it")
	assert.Equal(t, "Nation", al[0].OutputKey)
	assert.Equal(t, "u", al[0].TransformSpec)
}

func TestSet_EmptyAndStar(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set(""))
	require.NoError(t, al.Set("*"))
	assert.Empty(t, al)
}

func TestSetGlobalTransformSpec(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("country,pct,*::u"))
	require.NoError(t, al.SetGlobalTransformSpec())

	assert.Equal(t, "u,", al[0].TransformSpec)
	assert.Equal(t, "u,", al[1].TransformSpec)
	assert.False(t, al[2].Include, "the global entry itself is never output")
}

func TestTransform_Case(t *testing.T) {
	a := Attr{TransformSpec: "u"}
	assert.Equal(t, "JED", a.Transform("jed"))

	a = Attr{TransformSpec: "l"}
	assert.Equal(t, "jed", a.Transform("JED"))

	// The last case transformation wins; a global 'u' prepended to an attr's
	// own 'l' must come out lower.
	a = Attr{TransformSpec: "u,l"}
	assert.Equal(t, "jed", a.Transform("JED"))
}

func TestTransform_Truncate(t *testing.T) {
	a := Attr{TransformSpec: "5"}
	assert.Equal(t, "Saudi", a.Transform("Saudi Arabia"))
	assert.Equal(t, "SA", a.Transform("SA"), "short values pass through")
}

func TestTransform_MiddleEllipsis(t *testing.T) {
	a := Attr{TransformSpec: "-8"}
	assert.Equal(t, "Kin..ort", a.Transform("King Abdulaziz International Airport"))
}

func TestTransform_NonString(t *testing.T) {
	a := Attr{TransformSpec: "u"}
	assert.Equal(t, 42, a.Transform(42))
	assert.Equal(t, true, a.Transform(true))
}

func TestString_RoundTrip(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("country:Nation:u,pct"))
	assert.Equal(t, "country:Nation:u,pct:pct:", al.String())
	assert.Equal(t, "list", al.Type())
}
