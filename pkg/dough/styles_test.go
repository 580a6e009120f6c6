// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dough

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dougherrors "github.com/doughlab/dough/pkg/errors"
	"github.com/doughlab/dough/pkg/header"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	for _, s := range GetStyles() {
		seed, err := c.Seed(Style(s))
		require.NoError(t, err, s)
		assert.True(t, seed.HydrationBand.Contains(seed.Hydration), "%s hydration inside its band", s)
		assert.Positive(t, seed.NumberOfBalls, s)
	}
}

func TestStyleDefaults(t *testing.T) {
	seed, err := StyleDefaults("nyc")
	require.NoError(t, err)
	assert.Equal(t, YeastInstant, seed.YeastType)
	assert.Equal(t, TechniqueColdRetard, seed.Technique)

	_, err = StyleDefaults("chicago")
	require.Error(t, err)
	assert.True(t, dougherrors.HasCode(err, dougherrors.ErrCodeNotFound))
}

func TestCatalogSeedReturnsCopy(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	seed, err := c.Seed(StyleNeapolitan)
	require.NoError(t, err)
	seed.Hydration = 99

	again, err := c.Seed(StyleNeapolitan)
	require.NoError(t, err)
	assert.Equal(t, 62.0, again.Hydration)
}

func TestCatalogListing(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	l := c.Listing()
	assert.Equal(t, header.KindStyleCatalog, l.Kind)
	require.Len(t, l.Styles, len(GetStyles()))
	for i, e := range l.Styles {
		assert.Equal(t, GetStyles()[i], string(e.Name))
	}
}
