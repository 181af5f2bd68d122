package dictionary_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/poetry-backend/internal/adapter/postgres/dictionary"
	"github.com/heartmarshall/poetry-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/poetry-backend/internal/domain"
)

const samplePayload = `{
  "data": {
    "word": "casa",
    "meanings": [
      {
        "origin": {"raw": "Del lat. casa 'choza'.", "text": "casa", "type": "lat", "voice": "choza"},
        "senses": [
          {"meaning_number": 1, "description": "Edificio para habitar.", "category": "noun",
           "synonyms": ["vivienda", "hogar"], "antonyms": ["intemperie"]},
          {"meaning_number": 2, "description": "Familia.", "category": "noun",
           "synonyms": ["familia"], "antonyms": ["intemperie"]}
        ]
      },
      {
        "origin": {"raw": "Otro origen.", "text": "casa"},
        "senses": [
          {"meaning_number": 1, "description": "Escaque.", "synonyms": "not-an-array"}
        ],
        "conjugations": null
      }
    ]
  }
}`

// ---------------------------------------------------------------------------
// Statement-level tests (pgxmock)
// ---------------------------------------------------------------------------

func TestUpsert_DedupsAndSortsKeys(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	casa, luna := uuid.New(), uuid.New()
	mock.ExpectQuery("INSERT INTO dictionary_words").
		WithArgs([]string{"CASA", "LUNA"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "text"}).
			AddRow(casa, "CASA").
			AddRow(luna, "LUNA"))

	ids, err := dictionary.New(mock).Upsert(context.Background(), []string{"LUNA", "CASA", "LUNA"})
	require.NoError(t, err)
	assert.Equal(t, map[string]uuid.UUID{"CASA": casa, "LUNA": luna}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_EmptyInputSkipsQuery(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ids, err := dictionary.New(mock).Upsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_MissingReturnedRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO dictionary_words").
		WillReturnRows(pgxmock.NewRows([]string{"id", "text"}).AddRow(uuid.New(), "CASA"))

	_, err = dictionary.New(mock).Upsert(context.Background(), []string{"CASA", "LUNA"})
	assert.ErrorContains(t, err, "got 1 ids for 2 keys")
}

func TestSetPayloadIfEmpty_NoRowIsNotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("UPDATE dictionary_words").
		WithArgs(json.RawMessage(`{}`), "CASA").
		WillReturnRows(pgxmock.NewRows([]string{"id", "text", "payload"}))

	_, err = dictionary.New(mock).SetPayloadIfEmpty(context.Background(), "CASA", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearPayload_DriverErrorPassesThrough(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("UPDATE dictionary_words SET payload = NULL").
		WithArgs("CASA").
		WillReturnError(boom)

	_, err = dictionary.New(mock).ClearPayload(context.Background(), "CASA")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Integration tests (testcontainers)
// ---------------------------------------------------------------------------

func TestUpsert_ExistingKeysKeepTheirID(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := dictionary.New(pool)

	key := testhelper.UniqueWord("casa")
	seeded := testhelper.SeedDictionaryWord(t, pool, key, json.RawMessage(samplePayload))
	other := testhelper.UniqueWord("luna")

	ids, err := repo.Upsert(ctx, []string{key, other, key})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, seeded.ID, ids[key])
	assert.NotEqual(t, uuid.Nil, ids[other])

	// The payload of an existing entry is untouched.
	got, err := repo.GetByText(ctx, key)
	require.NoError(t, err)
	assert.True(t, got.Enriched())
}

func TestUpsert_ConcurrentSameKeys(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := dictionary.New(pool)

	a, b := testhelper.UniqueWord("a"), testhelper.UniqueWord("b")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			keys := []string{a, b}
			if i%2 == 1 {
				keys = []string{b, a}
			}
			_, errs[i] = repo.Upsert(ctx, keys)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, testhelper.CountRows(t, pool, "dictionary_words", "text = $1", a))
	assert.Equal(t, 1, testhelper.CountRows(t, pool, "dictionary_words", "text = $1", b))
}

func TestSetPayloadIfEmpty_OnlyFirstWriterWins(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := dictionary.New(pool)

	key := testhelper.UniqueWord("w")
	testhelper.SeedDictionaryWord(t, pool, key, nil)

	got, err := repo.SetPayloadIfEmpty(ctx, key, json.RawMessage(`{"data":{"n":1}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"n":1}}`, string(got.Payload))

	_, err = repo.SetPayloadIfEmpty(ctx, key, json.RawMessage(`{"data":{"n":2}}`))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := repo.GetByText(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"n":1}}`, string(stored.Payload))
}

func TestClearPayload(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := dictionary.New(pool)

	key := testhelper.UniqueWord("c")
	testhelper.SeedDictionaryWord(t, pool, key, json.RawMessage(samplePayload))

	got, err := repo.ClearPayload(ctx, key)
	require.NoError(t, err)
	assert.False(t, got.Enriched())

	// Clearing twice is fine.
	_, err = repo.ClearPayload(ctx, key)
	require.NoError(t, err)

	_, err = repo.ClearPayload(ctx, testhelper.UniqueWord("missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjections(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := dictionary.New(pool)

	key := testhelper.UniqueWord("casa")
	testhelper.SeedDictionaryWord(t, pool, key, json.RawMessage(samplePayload))

	t.Run("synonyms skip non-array nodes", func(t *testing.T) {
		got, err := repo.Synonyms(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []string{"vivienda", "hogar", "familia"}, got)
	})

	t.Run("antonyms are distinct", func(t *testing.T) {
		got, err := repo.Antonyms(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []string{"intemperie"}, got)
	})

	t.Run("one sense row per sense", func(t *testing.T) {
		got, err := repo.Senses(ctx, key)
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.NotNil(t, got[0].Description)
		assert.Equal(t, "Edificio para habitar.", *got[0].Description)
		require.NotNil(t, got[0].MeaningNumber)
		assert.Equal(t, "1", *got[0].MeaningNumber)
		assert.Nil(t, got[2].Category)
	})

	t.Run("one origin per meaning", func(t *testing.T) {
		got, err := repo.Origins(ctx, key)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.NotNil(t, got[0].Voice)
		assert.Equal(t, "choza", *got[0].Voice)
		assert.Nil(t, got[1].Type)
	})

	t.Run("conjugations null is nil", func(t *testing.T) {
		raw, err := repo.Conjugations(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, raw)
	})
}

func TestProjections_EmptyAndMalformed(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := dictionary.New(pool)

	unenriched := testhelper.UniqueWord("u")
	testhelper.SeedDictionaryWord(t, pool, unenriched, nil)

	malformed := testhelper.UniqueWord("m")
	testhelper.SeedDictionaryWord(t, pool, malformed, json.RawMessage(`{"data":{"meanings":{"not":"array"}}}`))

	for _, key := range []string{unenriched, malformed, testhelper.UniqueWord("absent")} {
		_, err := repo.Synonyms(ctx, key)
		assert.ErrorIs(t, err, domain.ErrNotFound, key)
		_, err = repo.Antonyms(ctx, key)
		assert.ErrorIs(t, err, domain.ErrNotFound, key)
		_, err = repo.Senses(ctx, key)
		assert.ErrorIs(t, err, domain.ErrNotFound, key)
		_, err = repo.Origins(ctx, key)
		assert.ErrorIs(t, err, domain.ErrNotFound, key)
	}

	_, err := repo.Conjugations(ctx, testhelper.UniqueWord("absent"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjections_SensesWithoutArrayFields(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := dictionary.New(pool)

	key := testhelper.UniqueWord("s")
	testhelper.SeedDictionaryWord(t, pool, key, json.RawMessage(
		`{"data":{"meanings":[{"senses":[{"description":"x"},{"synonyms":"hogar","antonyms":{"a":1}}]}]}}`))

	_, err := repo.Synonyms(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.Antonyms(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	senses, err := repo.Senses(ctx, key)
	require.NoError(t, err)
	assert.Len(t, senses, 2)
}

func TestProjections_SkipNonStringEntries(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := dictionary.New(pool)

	key := testhelper.UniqueWord("n")
	testhelper.SeedDictionaryWord(t, pool, key, json.RawMessage(
		`{"data":{"meanings":[{"senses":[{"synonyms":[null,"hogar",1]},{"antonyms":[null]}]}]}}`))

	got, err := repo.Synonyms(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []string{"hogar"}, got)

	_, err = repo.Antonyms(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
