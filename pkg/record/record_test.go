package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adprov/pkg/schema"
)

func TestFormatRow_SelectiveQuoting(t *testing.T) {
	f := NewFormatter([]string{schema.ColOU, schema.ColMobile})
	row := UserRow{
		AccountName: "mario.rossi",
		Creation:    Yes,
		OU:          "OU=Standard,DC=corp",
		Name:        "Rossi Mario",
		Mobile:      "+393331234567",
		Description: `PC "nuovo"`,
		Company:     `a\b`,
	}

	line, err := f.FormatRow(UserSchema, row.Fields())
	require.NoError(t, err)

	fields, err := Split(line)
	require.NoError(t, err)
	assert.Equal(t, row.Fields(), fields)

	assert.Contains(t, line, `"OU=Standard,DC=corp"`, "quote column is quoted without a space")
	assert.Contains(t, line, `"Rossi Mario"`)
	assert.Contains(t, line, `"+393331234567"`)
	assert.Contains(t, line, `"PC \"nuovo\""`)
	assert.Contains(t, line, `a\\b`)
	assert.Contains(t, line, "mario.rossi,SI,")
}

func TestFormatField(t *testing.T) {
	tests := []struct {
		name  string
		value string
		force bool
		want  string
	}{
		{name: "plain", value: "mario.rossi", want: "mario.rossi"},
		{name: "space", value: "Rossi Mario", want: `"Rossi Mario"`},
		{name: "forced", value: "OU=X", force: true, want: `"OU=X"`},
		{name: "forced empty", value: "", force: true, want: `""`},
		{name: "empty", value: "", want: ""},
		{name: "unquoted delimiter", value: "a,b", want: `a\,b`},
		{name: "unquoted quote", value: `x"y`, want: `x\"y`},
		{name: "quoted quote", value: `say "hi"`, want: `"say \"hi\""`},
		{name: "backslash", value: `a\b`, want: `a\\b`},
		{name: "newline", value: "a\nb", want: "a\\\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatField(tt.value, tt.force))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	values := []string{
		"", " ", "plain", "with space", `with "quote"`, `"`, `\`, `\"`, "a,b", "a, b",
		"trailing\\", "line\nbreak", "cr\r\nlf", "Niccolò D'Angelo", "O365 Utenti Standard;Teams",
	}
	f := NewFormatter([]string{"Computer"})

	for _, v := range values {
		fields := ComputerRow{Computer: v, OU: v, AddMail: "x", MoveToOU: v}.Fields()

		text, err := f.Render(ComputerSchema, fields)
		require.NoError(t, err)

		rows, err := Parse(text)
		require.NoError(t, err, "value %q", v)
		require.Len(t, rows, 2, "value %q", v)
		assert.Equal(t, schema.ComputerRecordColumns, rows[0])
		assert.Equal(t, fields, rows[1], "value %q", v)
	}
}

func TestRender_HeaderThenOneRow(t *testing.T) {
	f := NewFormatter(nil)
	text, err := f.Render(ComputerSchema, ComputerRow{Computer: "PC01", OU: "OU=PC", Disable: No}.Fields())
	require.NoError(t, err)
	assert.Equal(t,
		"Computer,OU,add_mail,remove_mail,add_mobile,remove_mobile,add_userprincipalname,remove_userprincipalname,disable,moveToOU\r\n"+
			"PC01,OU=PC,,,,,,,No,\r\n",
		text)
}

func TestFormatRow_ColumnCount(t *testing.T) {
	_, err := NewFormatter(nil).FormatRow(UserSchema, []string{"a", "b"})
	assert.True(t, errors.Is(err, ErrColumnCount))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(`a,"open`)
	assert.True(t, errors.Is(err, ErrUnterminatedQuote))

	_, err = Parse(`a,b\`)
	assert.True(t, errors.Is(err, ErrDanglingEscape))
}

func TestParse_SkipsBlankLines(t *testing.T) {
	rows, err := Parse("a,b\r\n\r\nc,d\n")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, rows)
}

func TestDeterministic(t *testing.T) {
	f := NewFormatter([]string{schema.ColExpireDate})
	row := UserRow{AccountName: "mario.rossi", ExpireDate: "06/02/2025 00:00"}.Fields()

	first, err := f.Render(UserSchema, row)
	require.NoError(t, err)
	second, err := f.Render(UserSchema, row)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Rossi_M_interno", BaseName("Rossi", "mario", "interno"))
	assert.Equal(t, "DeLuca_A_esterno", BaseName("De Luca", "Anna", "esterno"))
	assert.Equal(t, "D'Angelo_N", BaseName("D'Angelo", "Niccolò", ""))
	assert.Equal(t, "Rossi_M_interno_pc.csv", FileName("Rossi_M_interno", KindComputer))
	assert.Equal(t, "Rossi_M_interno_profilazione.csv", FileName("Rossi_M_interno", KindProfiling))
	assert.Equal(t, "Rossi_M_interno.csv", FileName("Rossi_M_interno", KindUser))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("")
	assert.True(t, ok)
	assert.Equal(t, KindUser, k)

	k, ok = ParseKind("Computer")
	assert.True(t, ok)
	assert.Equal(t, KindComputer, k)

	_, ok = ParseKind("printer")
	assert.False(t, ok)
}

func TestRoundTrip_SingleEmptyField(t *testing.T) {
	s := Schema{Name: "single", Columns: []string{"A"}}

	out, err := NewFormatter(nil).Render(s, []string{""})
	require.NoError(t, err)
	assert.Equal(t, "A\r\n\"\"\r\n", out)

	rows, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A"}, {""}}, rows)
}
