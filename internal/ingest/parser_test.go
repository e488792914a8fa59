package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portos/internal/ingest"
)

func dotationFields() []ingest.Field {
	return []ingest.Field{
		{Name: "nom", Aliases: []string{"name", "employé"}},
		{Name: "run"},
		{Name: "facture"},
		{Name: "vente"},
	}
}

func TestDetectDelimiter_PriorityOrder(t *testing.T) {
	d, ok := ingest.DetectDelimiter("a\tb;c,d")
	require.True(t, ok)
	assert.Equal(t, '\t', d)

	d, ok = ingest.DetectDelimiter("a;b,c")
	require.True(t, ok)
	assert.Equal(t, ';', d)

	d, ok = ingest.DetectDelimiter("a,b")
	require.True(t, ok)
	assert.Equal(t, ',', d)

	_, ok = ingest.DetectDelimiter("plain words")
	assert.False(t, ok)
}

func TestParse_SemicolonLine(t *testing.T) {
	res, err := ingest.Parse("Jean Dupont;15000;8000;12000", ingest.Options{Fields: dotationFields()})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	rec := res.Records[0]
	assert.Equal(t, "Jean Dupont", rec.Text("nom"))
	assert.Equal(t, 15000.0, rec.Number("run"))
	assert.Equal(t, 8000.0, rec.Number("facture"))
	assert.Equal(t, 12000.0, rec.Number("vente"))
	assert.Equal(t, 1, res.Valid)
	assert.Equal(t, 0, res.Skipped)
}

func TestParse_SkipsShortRows(t *testing.T) {
	text := "Jean Dupont;15000;8000;12000\n" +
		"Marie Curie;9000;4000;2000\n" +
		"Bob;42\n" +
		"Luc Martin;100;200;300"

	res, err := ingest.Parse(text, ingest.Options{Fields: dotationFields()})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Valid)
	assert.Equal(t, 1, res.Skipped)
}

func TestParse_HeaderRowWithAliases(t *testing.T) {
	text := "Employé;RUN;Facture;VENTE\n" +
		"Jean Dupont;15000;8000;12000"

	res, err := ingest.Parse(text, ingest.Options{Fields: dotationFields()})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Jean Dupont", res.Records[0].Text("nom"))
	assert.Equal(t, 15000.0, res.Records[0].Number("run"))
}

func TestParse_TabAndQuotedCells(t *testing.T) {
	text := "\"Jean Dupont\"\t15000\t8000\t12000"
	res, err := ingest.Parse(text, ingest.Options{Fields: dotationFields()})
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", res.Records[0].Text("nom"))
}

func TestParse_BlankLinesDropped(t *testing.T) {
	text := "\n\nJean;1;2;3\n\n   \nMarie;4;5;6\n"
	res, err := ingest.Parse(text, ingest.Options{Fields: dotationFields()})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Valid)
}

func TestParse_Restartable(t *testing.T) {
	text := "Nom;RUN;FACTURE;VENTE\nJean;100;200;300\nMarie;1;2;3"
	opts := ingest.Options{Fields: dotationFields()}

	first, err := ingest.Parse(text, opts)
	require.NoError(t, err)
	second, err := ingest.Parse(text, opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := ingest.Parse("   \n  ", ingest.Options{Fields: dotationFields()})
	var fe *ingest.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "no data provided", fe.Error())
}

func TestParse_ZeroValidRowsNamesColumns(t *testing.T) {
	_, err := ingest.Parse("x;y", ingest.Options{Fields: dotationFields()})
	var fe *ingest.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Error(), "nom; run; facture; vente")
}

func TestRecord_NumberCoercesInvalidToZero(t *testing.T) {
	res, err := ingest.Parse("Jean;abc;8000;12000", ingest.Options{Fields: dotationFields()})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Records[0].Number("run"))
	assert.Equal(t, 8000.0, res.Records[0].Number("facture"))
}
