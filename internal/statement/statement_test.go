package statement

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mholloway/matchbook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := `Transaction Date,Description,Amount
03/10/2024,COFFEE SHOP,4.50
03/12/2024,GROCERY STORE,"$1,234.56"
03/15/2024,PAYMENT RECEIVED,(45.00)
`
	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{RawDate: "03/10/2024", RawAmount: "4.50"}, rows[0])
	assert.Equal(t, Row{RawDate: "03/12/2024", RawAmount: "$1,234.56"}, rows[1])
	assert.Equal(t, Row{RawDate: "03/15/2024", RawAmount: "(45.00)"}, rows[2])
}

func TestReadCSVColumnResolution(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "lowercase headers", header: "date,amount"},
		{name: "padded headers", header: " Posted Date , Debit "},
		{name: "charge column", header: "Trans Date,Charge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.header + "\n03/10/2024,4.50\n"
			rows, err := ReadCSV(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "03/10/2024", rows[0].RawDate)
			assert.Equal(t, "4.50", rows[0].RawAmount)
		})
	}
}

func TestReadCSVMissingColumns(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "no amount column", header: "Date,Description"},
		{name: "no date column", header: "Description,Amount"},
		{name: "neither column", header: "Foo,Bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.header + "\nx,y\n"))
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrColumnsNotFound)
		})
	}
}

func TestReadCSVShortRowsSkipped(t *testing.T) {
	input := "Date,Description,Amount\n03/10/2024\n03/11/2024,COFFEE,4.50\n"
	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "03/11/2024", rows[0].RawDate)
}

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestReadOFX(t *testing.T) {
	rows, err := ReadOFX(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{RawDate: "2024-01-15", RawAmount: "-25.50"}, rows[0])
	assert.Equal(t, Row{RawDate: "2024-01-20", RawAmount: "-125.00"}, rows[1])
}

func TestReadOFXInvalid(t *testing.T) {
	_, err := ReadOFX(strings.NewReader("this is not an OFX file"))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Date,Amount\n03/10/2024,4.50\n"), 0o644))

	rows, err := ReadFile(csvPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	qfxPath := filepath.Join(dir, "statement.qfx")
	require.NoError(t, os.WriteFile(qfxPath, []byte(sampleBankOFX), 0o644))

	rows, err = ReadFile(qfxPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, err = ReadFile(filepath.Join(dir, "statement.xlsx"))
	assert.Error(t, err)
}
