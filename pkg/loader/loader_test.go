package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/loader"
	"github.com/agentstation/dataunifier/pkg/logging"
	"github.com/agentstation/dataunifier/pkg/typed"
)

// createTempCSV creates a temporary CSV file with the given content.
func createTempCSV(t *testing.T, filename, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testContext(t *testing.T) (context.Context, *logging.TestLogger) {
	t.Helper()
	tl := logging.NewTestLogger(t)
	return logging.WithLogger(context.Background(), tl.Logger), tl
}

func TestLoadConvertsDeclaredKinds(t *testing.T) {
	ctx, tl := testContext(t)
	path := createTempCSV(t, "ledger.csv",
		"date,type,amount,from,to,memo\n"+
			"2021-01-02T10:00:00,ADD,12.345,1, 2 ,groceries\n")

	file, err := loader.Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "type", "amount", "from", "to", "memo"}, file.Header)
	require.Len(t, file.Rows, 1)
	assert.Equal(t, 0, file.Failures)

	row := file.Rows[0]
	assert.Equal(t, []string{"date", "type", "amount", "from", "to", "memo"}, row.Keys())

	v, _ := row.Get("date")
	assert.Equal(t, typed.KindTime, v.Kind())
	assert.Equal(t, "2021-01-02T10:00:00", v.String())

	v, _ = row.Get("type")
	assert.Equal(t, typed.KindString, v.Kind())
	assert.Equal(t, "ADD", v.String())

	v, _ = row.Get("amount")
	assert.Equal(t, typed.KindDecimal, v.Kind())
	assert.Equal(t, "12.345", v.String())

	v, _ = row.Get("to")
	assert.Equal(t, typed.KindInt, v.Kind())
	assert.Equal(t, "2", v.String())

	v, _ = row.Get("memo")
	assert.Equal(t, typed.KindString, v.Kind())

	assert.Equal(t, 0, tl.CountLevel(zerolog.WarnLevel))
}

func TestLoadKeepsRawOnConversionFailure(t *testing.T) {
	ctx, tl := testContext(t)
	path := createTempCSV(t, "bad.csv", "amount,date,from\nabc,yesterday,x\n")

	file, err := loader.Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, file.Rows, 1)
	assert.Equal(t, 3, file.Failures)

	for _, key := range []string{"amount", "date", "from"} {
		v, ok := file.Rows[0].Get(key)
		require.True(t, ok)
		assert.True(t, v.IsRaw(), key)
	}
	v, _ := file.Rows[0].Get("amount")
	assert.Equal(t, "abc", v.String())

	assert.Equal(t, 3, tl.CountLevel(zerolog.WarnLevel))
	assert.True(t, tl.ContainsAll(`"field":"amount"`, `"value":"abc"`, `"row":1`, "bad.csv"))
}

func TestLoadRaggedRows(t *testing.T) {
	ctx, _ := testContext(t)
	path := createTempCSV(t, "ragged.csv", "amount,type,memo\n1.00\n2.00,add,x,extra\n")

	file, err := loader.Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, file.Rows, 2)

	assert.Equal(t, []string{"amount"}, file.Rows[0].Keys())
	assert.Equal(t, []string{"amount", "type", "memo"}, file.Rows[1].Keys())
}

func TestLoadBlankTypedCellIsNotAFailure(t *testing.T) {
	ctx, _ := testContext(t)
	path := createTempCSV(t, "blank.csv", "euro,cents\n7,\n")

	file, err := loader.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, file.Failures)

	v, _ := file.Rows[0].Get("cents")
	assert.True(t, v.IsRaw())
	assert.Equal(t, "", v.String())
}

func TestLoadBlankDateWarns(t *testing.T) {
	ctx, tl := testContext(t)
	path := createTempCSV(t, "blank-date.csv", "date,amount,memo\n ,1.00,\n")

	file, err := loader.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, file.Failures)

	v, _ := file.Rows[0].Get("date")
	assert.True(t, v.IsRaw())
	assert.Equal(t, 1, tl.CountLevel(zerolog.WarnLevel))
	tl.AssertContains(t, "Blank date")
}

func TestLoadStripsBOMAndHandlesDuplicates(t *testing.T) {
	ctx, _ := testContext(t)
	path := createTempCSV(t, "bom.csv", "\ufeffamount,memo,amount\n1,a,2\n")

	file, err := loader.Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, "amount", file.Header[0])
	assert.Equal(t, []string{"amount", "memo"}, file.Rows[0].Keys())
	v, _ := file.Rows[0].Get("amount")
	assert.Equal(t, "2", v.String())
}

func TestLoadEmptyFile(t *testing.T) {
	ctx, tl := testContext(t)
	path := createTempCSV(t, "empty.csv", "")

	file, err := loader.Load(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, file.Header)
	assert.Empty(t, file.Rows)
	tl.AssertContains(t, "Empty file")
}

func TestLoadHeaderOnly(t *testing.T) {
	ctx, _ := testContext(t)
	path := createTempCSV(t, "header.csv", "amount,type\n")

	file, err := loader.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"amount", "type"}, file.Header)
	assert.Empty(t, file.Rows)
}

func TestLoadWithDelimiter(t *testing.T) {
	ctx, _ := testContext(t)
	path := createTempCSV(t, "semi.csv", "euro;cents\n7;50\n")

	file, err := loader.New(loader.WithDelimiter(';')).Load(ctx, path)
	require.NoError(t, err)

	v, _ := file.Rows[0].Get("cents")
	assert.Equal(t, "50", v.String())
}

func TestLoadErrors(t *testing.T) {
	ctx, _ := testContext(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load(ctx, filepath.Join(t.TempDir(), "nope.csv"))
		var ioErr *pkgerrors.IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "open", ioErr.Operation)
	})

	t.Run("malformed quotes", func(t *testing.T) {
		path := createTempCSV(t, "quotes.csv", "amount,memo\n1,\"unterminated\n")
		_, err := loader.Load(ctx, path)
		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "csv", parseErr.Format)
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := loader.Load(canceled, createTempCSV(t, "a.csv", "amount\n1\n"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConvert(t *testing.T) {
	v, err := loader.Convert("cents", " 50 ")
	require.NoError(t, err)
	assert.Equal(t, "50", v.String())

	_, err = loader.Convert("euro", "seven")
	assert.True(t, pkgerrors.IsConversionError(err))

	v, err = loader.Convert("unknown_column", "anything")
	require.NoError(t, err)
	assert.Equal(t, typed.KindString, v.Kind())
}
