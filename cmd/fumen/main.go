package main

import (
	"bufio"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/fumen"
	"github.com/bodgit/fumen/image"
	"github.com/bodgit/fumen/library"
	"github.com/urfave/cli/v2"
)

const defaultDB = "fumen.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func printPage(w io.Writer, i int, p *fumen.Page) {
	fmt.Fprintf(w, "Page %d:", i+1)
	if p.Piece != nil {
		fmt.Fprintf(w, " %v %v at %d,%d", p.Piece.Type, p.Piece.Rotation, p.Piece.X, p.Piece.Y)
	}
	for _, flag := range []struct {
		set  bool
		name string
	}{
		{p.Lock, "lock"},
		{p.Rise, "rise"},
		{p.Mirror, "mirror"},
	} {
		if flag.set {
			fmt.Fprintf(w, " %s", flag.name)
		}
	}
	fmt.Fprintln(w)
	if p.Comment != nil {
		fmt.Fprintf(w, "Comment: %s\n", *p.Comment)
	}

	// Skip the empty rows at the top
	top := fumen.FieldHeight - 1
	for ; top > 0 && p.Field[top] == (fumen.Row{}); top-- {
	}
	for y := top; y >= 0; y-- {
		for _, c := range p.Field[y] {
			fmt.Fprint(w, c)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "----------")
	for _, c := range p.Garbage {
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

func printFumen(f *fumen.Fumen) {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	fmt.Fprintf(w, "%d pages, guideline %v\n", len(f.Pages), f.Guideline)
	for i := range f.Pages {
		fmt.Fprintln(w)
		printPage(w, i, &f.Pages[i])
	}
}

func openLibrary(c *cli.Context) (*library.Library, *library.DB, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	db, err := library.NewDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return library.New(db, logger), db, nil
}

func needArgs(c *cli.Context, n int) {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "fumen"
	app.Usage = "fumen encoding and library utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"FUMEN_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "show",
			Usage:     "Decode and print a document",
			ArgsUsage: "FUMEN",
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				f, err := fumen.Decode(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				printFumen(f)

				return nil
			},
		},
		{
			Name:      "image",
			Usage:     "Create a single page document from a bitmap",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				r, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer r.Close()

				p, err := image.Decode(r)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f := fumen.New()
				f.Pages = append(f.Pages, *p)

				s, err := f.Encode()
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Println(s)

				return nil
			},
		},
		{
			Name:      "add",
			Usage:     "Add a document to the library",
			ArgsUsage: "NAME FUMEN",
			Action: func(c *cli.Context) error {
				needArgs(c, 2)

				f, err := fumen.Decode(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				_, db, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := db.Add(c.Args().First(), f); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "get",
			Usage:     "Print a document from the library",
			ArgsUsage: "NAME",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "pages",
					Usage: "print every page",
				},
			},
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				_, db, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				f, err := db.Get(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if f == nil {
					return cli.NewExitError(fmt.Sprintf("no document named \"%s\"", c.Args().First()), 1)
				}

				if c.Bool("pages") {
					printFumen(f)
					return nil
				}

				s, err := f.Encode()
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Println(s)

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List the documents in the library",
			Action: func(c *cli.Context) error {
				_, db, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				entries, err := db.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, e := range entries {
					fmt.Printf("%s\t%d\n", e.Name, e.Pages)
				}

				return nil
			},
		},
		{
			Name:      "delete",
			Usage:     "Remove a document from the library",
			ArgsUsage: "NAME",
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				_, db, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := db.Delete(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import documents from XML",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				_, db, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := db.ImportXML(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Export documents to XML",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				_, db, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := db.ExportXML(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Scan filesystem and add any documents found",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of files decoded in parallel",
				},
			},
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				l, db, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := l.Scan(c.Args().First(), c.Int("workers")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
