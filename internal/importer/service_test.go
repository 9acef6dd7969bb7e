package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/parcelas/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	t.Run("JSON", func(t *testing.T) {
		table, err := svc.Import(importer.FormatJSON, "", strings.NewReader(
			`{"issuer":"Elo","parcelas":[{"installments":1,"mdr":3.79,"rr":0,"total":3.79}]}`,
		))
		require.NoError(t, err)
		assert.Equal(t, "Elo", table.Issuer)
		assert.Len(t, table.Tiers, 1)
	})

	t.Run("CSVWithNameOverride", func(t *testing.T) {
		table, err := svc.Import("CSV", " Hipercard ", strings.NewReader("Bandeira;Hiper\nParcelas;Taxa\n1;3,69\n"))
		require.NoError(t, err)
		assert.Equal(t, "Hipercard", table.Issuer)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := svc.Import("xlsx", "", strings.NewReader(""))
		assert.ErrorContains(t, err, "unknown format")
	})

	t.Run("BadJSON", func(t *testing.T) {
		_, err := svc.Import(importer.FormatJSON, "", strings.NewReader("{"))
		assert.Error(t, err)
	})
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, importer.FormatJSON, importer.FormatFromPath("/tmp/visa.JSON"))
	assert.Equal(t, importer.FormatCSV, importer.FormatFromPath("taxas.csv"))
	assert.Equal(t, importer.FormatCSV, importer.FormatFromPath("taxas"))
}
