package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"blogicum/config"
	"blogicum/database"
	"blogicum/logger"
	"blogicum/models"
	"blogicum/services"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const usage = `Usage: blogadmin COMMAND [flags]

Commands:
  migrate                                  create or update the schema
  category-create -title T [-slug S] [-description D] [-published]
  category-publish SLUG
  category-hide SLUG
  category-list`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sugar, err := logger.NewSugar(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer sugar.Sync()

	db, err := database.Connect(cfg, sugar)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := run(context.Background(), db, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, db *gorm.DB, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New(usage)
	}
	categories := services.NewCategoryService(db)

	command, rest := args[0], args[1:]
	switch command {
	case "migrate":
		if err := database.Migrate(db); err != nil {
			return errors.Wrap(err, "migrate")
		}
		fmt.Fprintln(out, "Schema is up to date")

	case "category-create":
		flags := flag.NewFlagSet("category-create", flag.ContinueOnError)
		flags.SetOutput(out)
		req := models.CreateCategoryRequest{}
		flags.StringVar(&req.Title, "title", "", "category title")
		flags.StringVar(&req.Slug, "slug", "", "URL slug, derived from the title when empty")
		flags.StringVar(&req.Description, "description", "", "category description")
		flags.BoolVar(&req.IsPublished, "published", false, "publish immediately")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if req.Title == "" {
			return errors.New("category-create: -title is required")
		}
		category, err := categories.Create(ctx, &req)
		if err != nil {
			return errors.Wrap(err, "category-create")
		}
		fmt.Fprintf(out, "Created category %q (id=%d, published=%t)\n", category.Slug, category.ID, category.IsPublished)

	case "category-publish", "category-hide":
		if len(rest) != 1 {
			return errors.Errorf("%s: expected exactly one SLUG", command)
		}
		published := command == "category-publish"
		if err := categories.SetPublished(ctx, rest[0], published); err != nil {
			return errors.Wrapf(err, "%s %s", command, rest[0])
		}
		fmt.Fprintf(out, "Category %q published=%t\n", rest[0], published)

	case "category-list":
		all, err := categories.ListAll(ctx)
		if err != nil {
			return errors.Wrap(err, "category-list")
		}
		for _, c := range all {
			fmt.Fprintf(out, "%d\t%s\t%t\t%s\n", c.ID, c.Slug, c.IsPublished, c.Title)
		}

	default:
		return errors.Errorf("unknown command %q\n\n%s", command, usage)
	}
	return nil
}
