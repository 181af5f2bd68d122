package dictionary

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/poetry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/poetry-backend/internal/domain"
)

// Derived queries over payload->'data'->'meanings'[]. Non-array nodes are
// replaced by an empty array so a malformed payload yields no rows instead
// of a jsonb_array_elements error. Synonym and antonym entries that are not
// JSON strings (null included) are skipped.
const (
	meaningsFrom = `
FROM dictionary_words d
CROSS JOIN LATERAL jsonb_array_elements(
    CASE WHEN jsonb_typeof(d.payload->'data'->'meanings') = 'array'
         THEN d.payload->'data'->'meanings' ELSE '[]'::jsonb END) AS m`

	sensesJoin = `
CROSS JOIN LATERAL jsonb_array_elements(
    CASE WHEN jsonb_typeof(m->'senses') = 'array'
         THEN m->'senses' ELSE '[]'::jsonb END) AS s`

	synonymsSQL = `
SELECT syn.value #>> '{}' AS synonym` + meaningsFrom + sensesJoin + `
CROSS JOIN LATERAL jsonb_array_elements(
    CASE WHEN jsonb_typeof(s->'synonyms') = 'array'
         THEN s->'synonyms' ELSE '[]'::jsonb END) AS syn(value)
WHERE d.text = $1
  AND jsonb_typeof(syn.value) = 'string'`

	antonymsSQL = `
SELECT DISTINCT ant.value #>> '{}' AS antonym` + meaningsFrom + sensesJoin + `
CROSS JOIN LATERAL jsonb_array_elements(
    CASE WHEN jsonb_typeof(s->'antonyms') = 'array'
         THEN s->'antonyms' ELSE '[]'::jsonb END) AS ant(value)
WHERE d.text = $1
  AND jsonb_typeof(ant.value) = 'string'`

	sensesSQL = `
SELECT s->>'meaning_number' AS meaning_number,
       s->>'description'    AS description,
       s->>'category'       AS category,
       s->>'usage'          AS usage,
       s->>'raw'            AS raw` + meaningsFrom + sensesJoin + `
WHERE d.text = $1`

	originsSQL = `
SELECT m->'origin'->>'raw'   AS raw,
       m->'origin'->>'text'  AS text,
       m->'origin'->>'type'  AS type,
       m->'origin'->>'voice' AS voice` + meaningsFrom + `
WHERE d.text = $1`
)

// Synonyms returns every synonym of every sense, in payload order.
// Returns domain.ErrNotFound when nothing is projected.
func (r *Repo) Synonyms(ctx context.Context, text string) ([]string, error) {
	var out []string
	if err := r.project(ctx, &out, synonymsSQL, text); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s %s synonyms: %w", entity, text, domain.ErrNotFound)
	}
	return out, nil
}

// Antonyms returns the distinct antonyms of every sense.
// Returns domain.ErrNotFound when nothing is projected.
func (r *Repo) Antonyms(ctx context.Context, text string) ([]string, error) {
	var out []string
	if err := r.project(ctx, &out, antonymsSQL, text); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s %s antonyms: %w", entity, text, domain.ErrNotFound)
	}
	return out, nil
}

// Senses returns one row per sense of every meaning.
// Returns domain.ErrNotFound when nothing is projected.
func (r *Repo) Senses(ctx context.Context, text string) ([]domain.Sense, error) {
	var out []domain.Sense
	if err := r.project(ctx, &out, sensesSQL, text); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s %s senses: %w", entity, text, domain.ErrNotFound)
	}
	return out, nil
}

// Origins returns the origin block of every meaning.
// Returns domain.ErrNotFound when nothing is projected.
func (r *Repo) Origins(ctx context.Context, text string) ([]domain.Origin, error) {
	var out []domain.Origin
	if err := r.project(ctx, &out, originsSQL, text); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s %s origin: %w", entity, text, domain.ErrNotFound)
	}
	return out, nil
}

func (r *Repo) project(ctx context.Context, dst any, query, text string) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := pgxscan.Select(ctx, q, dst, query, text); err != nil {
		return postgres.MapError(err, entity, text)
	}
	return nil
}
