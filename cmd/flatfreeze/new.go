package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/flatfreeze/flatfreeze/scaffold"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a new site",
		ArgsUsage: "<dir>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				return errors.New("usage: flatfreeze new <dir>")
			}
			return runNew(dir)
		},
	}
}

func runNew(dir string) error {
	fmt.Printf("Creating new flatfreeze site: %s\n\n", dir)

	created, err := scaffold.Create(dir, scaffold.Data{SiteName: toTitle(lastSegment(dir))})
	if err != nil {
		return err
	}
	for _, p := range created {
		fmt.Printf("  created %s\n", p)
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", dir)
	fmt.Println("  flatfreeze serve")
	fmt.Println()
	fmt.Println("Write posts in pages/*.md, then run 'flatfreeze freeze' to publish.")
	return nil
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/"+string(os.PathSeparator))
	if idx := strings.LastIndexAny(p, "/"+string(os.PathSeparator)); idx >= 0 {
		return p[idx+1:]
	}
	return p
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
