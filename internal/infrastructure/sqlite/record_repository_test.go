package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

// setupTestRepo creates a new DB and returns the repository for testing.
// The DB is closed when the test completes.
func setupTestRepo(t *testing.T) domain.RecordRepository {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "registrations.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db.RecordRepository()
}

func testRecord(t *testing.T, year int, month time.Month, category domain.Category, manufacturer string, count int64) *domain.Record {
	t.Helper()
	rec, err := domain.NewRecord(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), category, manufacturer, count)
	require.NoError(t, err)
	return rec
}

func TestRecordRepository_SaveBatchAndList(t *testing.T) {
	repo := setupTestRepo(t)

	batch := []*domain.Record{
		testRecord(t, 2024, time.January, domain.CategoryTwoWheeler, "HeroX", 550000),
		testRecord(t, 2024, time.January, domain.CategoryTwoWheeler, "Honda", 420000),
		testRecord(t, 2024, time.February, domain.CategoryFourWheeler, "Maruti Suzuki", 129000),
	}
	require.NoError(t, repo.SaveBatch(batch))

	records, err := repo.List(domain.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Ordered by date, then category, then manufacturer.
	require.Equal(t, "HeroX", records[0].Manufacturer())
	require.Equal(t, "Honda", records[1].Manufacturer())
	require.Equal(t, "Maruti Suzuki", records[2].Manufacturer())
	require.Equal(t, int64(550000), records[0].Count())
}

func TestRecordRepository_SaveBatchRejectsEmpty(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.SaveBatch(nil)
	var emptyErr *domain.EmptyBatchError
	require.ErrorAs(t, err, &emptyErr)
}

func TestRecordRepository_SaveBatchRejectsNilRecord(t *testing.T) {
	repo := setupTestRepo(t)

	batch := []*domain.Record{
		testRecord(t, 2024, time.January, domain.CategoryTwoWheeler, "HeroX", 10),
		nil,
	}
	err := repo.SaveBatch(batch)
	var invalidErr *domain.InvalidRecordError
	require.ErrorAs(t, err, &invalidErr)

	count, err := repo.Count()
	require.NoError(t, err)
	require.Zero(t, count, "the whole batch must be rejected")
}

func TestRecordRepository_ListFilters(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.SaveBatch([]*domain.Record{
		testRecord(t, 2023, time.June, domain.CategoryTwoWheeler, "HeroX", 10),
		testRecord(t, 2023, time.December, domain.CategoryTwoWheeler, "Honda", 20),
		testRecord(t, 2024, time.March, domain.CategoryFourWheeler, "Hyundai", 30),
		testRecord(t, 2024, time.June, domain.CategoryFourWheeler, "Hyundai", 40),
	}))

	records, err := repo.List(domain.Filter{Category: domain.CategoryFourWheeler})
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = repo.List(domain.Filter{
		From: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = repo.List(domain.Filter{Manufacturer: "Hyundai", Limit: 1})
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = repo.List(domain.Filter{Category: domain.CategoryThreeWheeler})
	require.NoError(t, err)
	require.Empty(t, records, "no matches is a valid empty result")
}

func TestRecordRepository_ReplaceAll(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.SaveBatch([]*domain.Record{
		testRecord(t, 2023, time.January, domain.CategoryTwoWheeler, "HeroX", 10),
	}))

	require.NoError(t, repo.ReplaceAll([]*domain.Record{
		testRecord(t, 2024, time.January, domain.CategoryTwoWheeler, "TVS", 99),
		testRecord(t, 2024, time.February, domain.CategoryTwoWheeler, "TVS", 88),
	}))

	records, err := repo.List(domain.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "TVS", records[0].Manufacturer())

	// Empty replace clears the store.
	require.NoError(t, repo.ReplaceAll(nil))
	count, err := repo.Count()
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestRecordRepository_Manufacturers(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.SaveBatch([]*domain.Record{
		testRecord(t, 2024, time.January, domain.CategoryTwoWheeler, "TVS", 1),
		testRecord(t, 2024, time.January, domain.CategoryTwoWheeler, "HeroX", 1),
		testRecord(t, 2024, time.February, domain.CategoryTwoWheeler, "HeroX", 1),
		testRecord(t, 2024, time.January, domain.CategoryThreeWheeler, "Bajaj", 1),
	}))

	names, err := repo.Manufacturers(domain.CategoryTwoWheeler)
	require.NoError(t, err)
	require.Equal(t, []string{"HeroX", "TVS"}, names, "distinct and alphabetical")

	all, err := repo.Manufacturers("")
	require.NoError(t, err)
	require.Equal(t, []string{"Bajaj", "HeroX", "TVS"}, all)
}

func TestRecordRepository_SpanAndCount(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Span()
	var notFound *domain.RecordNotFoundError
	require.ErrorAs(t, err, &notFound, "empty store has no span")

	require.NoError(t, repo.SaveBatch([]*domain.Record{
		testRecord(t, 2021, time.March, domain.CategoryTwoWheeler, "HeroX", 1),
		testRecord(t, 2024, time.November, domain.CategoryFourWheeler, "Kia", 1),
	}))

	span, err := repo.Span()
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC), span.Earliest)
	require.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), span.Latest)

	count, err := repo.Count()
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

// TestRecordRepository_RoundTripProperty checks that whatever valid batch
// is saved comes back with identical contents.
func TestRecordRepository_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		repo := setupTestRepo(t)

		n := rapid.IntRange(1, 25).Draw(r, "numRecords")
		totalByKey := make(map[string]int64)
		batch := make([]*domain.Record, 0, n)
		for i := 0; i < n; i++ {
			year := rapid.IntRange(2021, 2024).Draw(r, "year")
			month := time.Month(rapid.IntRange(1, 12).Draw(r, "month"))
			category := domain.AllCategories()[rapid.IntRange(0, 2).Draw(r, "category")]
			manufacturer := rapid.StringMatching(`[A-Z][a-z]{2,8}`).Draw(r, "manufacturer")
			count := rapid.Int64Range(0, 1_000_000).Draw(r, "count")

			rec, err := domain.NewRecord(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), category, manufacturer, count)
			require.NoError(t, err)
			batch = append(batch, rec)
			totalByKey[rec.Date().Format("2006-01")+"/"+string(category)+"/"+manufacturer] += count
		}

		require.NoError(t, repo.SaveBatch(batch))

		records, err := repo.List(domain.Filter{})
		require.NoError(t, err)
		require.Len(t, records, n)

		gotByKey := make(map[string]int64)
		for _, rec := range records {
			gotByKey[rec.Date().Format("2006-01")+"/"+string(rec.Category())+"/"+rec.Manufacturer()] += rec.Count()
		}
		require.Equal(t, totalByKey, gotByKey)
	})
}
