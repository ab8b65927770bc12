package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Clínica Sur":       "clinica-sur",
		"Clínica Ñoño  2":   "clinica-nono-2",
		"  Dental   Care  ": "dental-care",
		"ÁÉÍÓÚ üñ":          "aeiou-un",
		"Salud & Vida S.A.": "salud-vida-s-a",
		"123":               "123",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

type fakeSlugRepo struct {
	Repository
	existing map[string]bool
}

func (f *fakeSlugRepo) SlugExists(slug string) (bool, error) {
	return f.existing[slug], nil
}

func TestUniqueSlug(t *testing.T) {
	repo := &fakeSlugRepo{existing: map[string]bool{}}

	slug, err := UniqueSlug(repo, "Clínica Sur")
	require.NoError(t, err)
	assert.Equal(t, "clinica-sur", slug)

	repo.existing["clinica-sur"] = true
	slug, err = UniqueSlug(repo, "Clínica Sur")
	require.NoError(t, err)
	assert.Equal(t, "clinica-sur-1", slug)

	repo.existing["clinica-sur-1"] = true
	slug, err = UniqueSlug(repo, "Clínica Sur")
	require.NoError(t, err)
	assert.Equal(t, "clinica-sur-2", slug)
}

func TestUniqueSlugEmptyName(t *testing.T) {
	repo := &fakeSlugRepo{existing: map[string]bool{}}

	slug, err := UniqueSlug(repo, "!!!")
	require.NoError(t, err)
	assert.Equal(t, "negocio", slug)
}

func TestDisponible(t *testing.T) {
	assert.True(t, (&Tenant{Activo: true}).Disponible())
	assert.False(t, (&Tenant{Activo: false}).Disponible())
	assert.False(t, (&Tenant{Activo: true, Suspendido: true}).Disponible())
}
