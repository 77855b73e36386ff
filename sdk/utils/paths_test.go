// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	p, err := ParsePath("s3://bucket/batches/2025/input.csv")
	require.NoError(t, err)
	assert.True(t, p.IsRemote())
	assert.Equal(t, "bucket", p.Host)
	assert.Equal(t, "batches/2025/input.csv", p.Path)
	assert.Equal(t, "input.csv", p.Filename)
	assert.Equal(t, "s3://bucket/batches/2025/input.csv", p.String())

	p, err = ParsePath(` C:\data\input.csv `)
	require.NoError(t, err)
	assert.False(t, p.IsRemote())
	assert.Equal(t, `C:\data\input.csv`, p.Path)
	assert.Equal(t, "input.csv", p.Filename)

	for _, raw := range []string{"", "s3://bucket", "s3:///key.csv"} {
		_, err := ParsePath(raw)
		assert.Error(t, err, raw)
	}
}
