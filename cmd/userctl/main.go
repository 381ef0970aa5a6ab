package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/user-directory/engine/internal/client"
)

const usage = `usage: userctl [-api URL] <command> [flags]

commands:
  list   list users (-search, -country, -company, -limit, -offset, -filter)
  get    show one user by id`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("userctl", flag.ContinueOnError)
	apiURL := global.String("api", envOr("USERCTL_API", "http://localhost:8080"), "API base URL")
	timeout := global.Duration("timeout", 10*time.Second, "request timeout")
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		return errors.New(usage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	c := client.New(*apiURL, *timeout)

	switch rest[0] {
	case "list":
		return runList(ctx, c, rest[1:])
	case "get":
		return runGet(ctx, c, rest[1:])
	default:
		return fmt.Errorf("unknown command %q\n%s", rest[0], usage)
	}
}

func runList(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	var p client.ListParams
	fs.StringVar(&p.Search, "search", "", "match name, email, company or title")
	fs.StringVar(&p.Country, "country", "", "match country")
	fs.StringVar(&p.Company, "company", "", "match company name")
	fs.IntVar(&p.Limit, "limit", 20, "page size (0 for all)")
	fs.IntVar(&p.Offset, "offset", 0, "rows to skip")
	filter := fs.String("filter", "", "narrow the fetched page locally")
	if err := fs.Parse(args); err != nil {
		return err
	}

	roster := client.NewRoster()
	if err := roster.Load(ctx, c, p); err != nil {
		return err
	}
	entries := roster.Filter(*filter)
	fmt.Println(titleStyle.Render(fmt.Sprintf("Users (%d of %d)", len(entries), roster.Total())))
	fmt.Println(renderEntries(entries))
	return nil
}

func runGet(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("get needs exactly one id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	u, err := c.GetUser(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println(renderUser(u))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
