package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/entrypoint"
)

// SeedCommand fills an empty catalog with a small sample library.
type SeedCommand struct {
	Driver       string
	DatabasePath string
	DSN          string
	Force        bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()

	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	fs.StringVar(&cmd.Driver, "driver", string(cfg.Database.Driver), "Database driver (sqlite or postgres)")
	fs.StringVar(&cmd.DatabasePath, "db", cfg.Database.Path, "Path to the SQLite database file")
	fs.StringVar(&cmd.DSN, "dsn", cfg.Database.DSN, "Postgres connection string")
	fs.BoolVar(&cmd.Force, "force", false, "Seed even if the catalog already has books")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate the catalog with sample authors, genres, books and copies.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -db ./demo.db -force\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	db, err := database.Open(config.Database{
		Driver: config.DatabaseDriver(cmd.Driver),
		Path:   cmd.DatabasePath,
		DSN:    cmd.DSN,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	svc, auditService := entrypoint.NewCatalog(db)
	defer auditService.Wait()

	summary, err := Seed(context.Background(), svc, cmd.Force)
	if err != nil {
		return err
	}
	if summary.Skipped {
		fmt.Printf("Catalog already has %d book(s); nothing seeded (use -force to seed anyway)\n", summary.ExistingBooks)
		return nil
	}

	fmt.Printf("Seeded %d author(s), %d genre(s), %d book(s) and %d copies\n",
		summary.Authors, summary.Genres, summary.Books, summary.BookInstances)
	return nil
}

// SeedTarget is the part of the catalog service seeding writes through.
type SeedTarget interface {
	Counts(ctx context.Context) (*catalog.HomeCounts, error)
	CreateGenre(ctx context.Context, name string) (*entities.Genre, bool, error)
	CreateAuthor(ctx context.Context, author *entities.Author) error
	CreateBook(ctx context.Context, book *entities.Book, genreIDs []uint) error
	CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error
}

// SeedSummary reports what Seed created.
type SeedSummary struct {
	Skipped       bool
	ExistingBooks int64

	Authors       int
	Genres        int
	Books         int
	BookInstances int
}

type seedAuthor struct {
	first, family string
	born, died    string
}

type seedBook struct {
	title, summary, isbn string
	author               int // index into seedAuthors
	genres               []string
	copies               []seedCopy
}

type seedCopy struct {
	imprint string
	status  entities.BookInstanceStatus
	dueIn   time.Duration // relative to now; zero means no due date
}

var seedGenres = []string{"Fantasy", "Science Fiction", "French Poetry"}

var seedAuthors = []seedAuthor{
	{first: "Patrick", family: "Rothfuss", born: "1973-06-06"},
	{first: "Ben", family: "Bova", born: "1932-11-08"},
	{first: "Isaac", family: "Asimov", born: "1920-01-02", died: "1992-04-06"},
	{first: "Bob", family: "Billings"},
	{first: "Jim", family: "Jones", born: "1971-12-16"},
}

var seedBooks = []seedBook{
	{
		title:   "The Name of the Wind (The Kingkiller Chronicle, #1)",
		summary: "A young orphan grows up to become the most notorious wizard his world has ever seen.",
		isbn:    "9781473211896",
		author:  0,
		genres:  []string{"Fantasy"},
		copies: []seedCopy{
			{imprint: "London Gollancz, 2014.", status: entities.StatusAvailable},
		},
	},
	{
		title:   "The Wise Man's Fear (The Kingkiller Chronicle, #2)",
		summary: "Kvothe searches for answers about the Amyr and the Chandrian, and the fate of his parents.",
		isbn:    "9788401352836",
		author:  0,
		genres:  []string{"Fantasy"},
		copies: []seedCopy{
			{imprint: "Gollancz, 2011.", status: entities.StatusLoaned, dueIn: 14 * 24 * time.Hour},
		},
	},
	{
		title:   "The Slow Regard of Silent Things (Kingkiller Chronicle)",
		summary: "Deep below the University there is a dark place, and Auri lives there.",
		isbn:    "9780756411336",
		author:  0,
		genres:  []string{"Fantasy"},
		copies: []seedCopy{
			{imprint: "Gollancz, 2015.", status: entities.StatusAvailable},
			{imprint: "Gollancz, 2015.", status: entities.StatusMaintenance},
		},
	},
	{
		title:   "Apes and Angels",
		summary: "Humankind's first venture into interstellar space meets a wave of death.",
		isbn:    "9780765379528",
		author:  1,
		genres:  []string{"Science Fiction"},
		copies: []seedCopy{
			{imprint: "New York Tom Doherty Associates, 2016.", status: entities.StatusLoaned, dueIn: -3 * 24 * time.Hour},
		},
	},
	{
		title:   "Death Wave",
		summary: "Ben Bova's previous novel sets up the discovery of the death wave heading for Earth.",
		isbn:    "9780765379504",
		author:  1,
		genres:  []string{"Science Fiction"},
		copies: []seedCopy{
			{imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", status: entities.StatusReserved},
		},
	},
	{
		title:   "Test Book 1",
		summary: "Summary of test book 1",
		isbn:    "ISBN111111",
		author:  4,
		genres:  []string{"French Poetry", "Fantasy"},
		copies: []seedCopy{
			{imprint: "Imprint XXX2", status: entities.StatusMaintenance},
		},
	},
	{
		title:   "Test Book 2",
		summary: "Summary of test book 2",
		isbn:    "ISBN222222",
		author:  4,
		genres:  []string{},
		copies:  []seedCopy{},
	},
}

// Seed writes the sample library through the catalog service, so the usual
// validation of references and the audit trail apply. An already populated
// catalog is left alone unless force is set.
func Seed(ctx context.Context, target SeedTarget, force bool) (*SeedSummary, error) {
	counts, err := target.Counts(ctx)
	if err != nil {
		return nil, err
	}
	if counts.Books > 0 && !force {
		return &SeedSummary{Skipped: true, ExistingBooks: counts.Books}, nil
	}

	summary := &SeedSummary{}

	genreIDs := make(map[string]uint, len(seedGenres))
	for _, name := range seedGenres {
		genre, created, err := target.CreateGenre(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("seed genre %q: %w", name, err)
		}
		genreIDs[name] = genre.ID
		if created {
			summary.Genres++
		}
	}

	authorIDs := make([]uint, len(seedAuthors))
	for i, a := range seedAuthors {
		author := &entities.Author{
			FirstName:   a.first,
			FamilyName:  a.family,
			DateOfBirth: seedDate(a.born),
			DateOfDeath: seedDate(a.died),
		}
		if err := target.CreateAuthor(ctx, author); err != nil {
			return nil, fmt.Errorf("seed author %q: %w", author.Name(), err)
		}
		authorIDs[i] = author.ID
		summary.Authors++
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	for _, b := range seedBooks {
		ids := make([]uint, 0, len(b.genres))
		for _, g := range b.genres {
			ids = append(ids, genreIDs[g])
		}
		book := &entities.Book{
			Title:    b.title,
			AuthorID: authorIDs[b.author],
			Summary:  b.summary,
			ISBN:     b.isbn,
		}
		if err := target.CreateBook(ctx, book, ids); err != nil {
			return nil, fmt.Errorf("seed book %q: %w", b.title, err)
		}
		summary.Books++

		for _, c := range b.copies {
			instance := &entities.BookInstance{
				BookID:  book.ID,
				Imprint: c.imprint,
				Status:  c.status,
			}
			if c.dueIn != 0 {
				due := now.Add(c.dueIn)
				instance.DueBack = &due
			}
			if err := target.CreateBookInstance(ctx, instance); err != nil {
				return nil, fmt.Errorf("seed copy of %q: %w", b.title, err)
			}
			summary.BookInstances++
		}
	}

	return summary, nil
}

func seedDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(entities.ISODateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
