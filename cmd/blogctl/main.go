// Command blogctl is a CLI client for the blog platform API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/blog"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/config"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/httpapi"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/notify"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/session"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/tokenstore"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// app wires the SDK for one invocation.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *tokenstore.Store
	session *session.Manager
	blogs   *blog.Client
}

func newApp(cfg *config.Config, log *zap.Logger) *app {
	store := tokenstore.New(cfg.StateDir)
	n := notify.NewConsole(os.Stdout)
	api := httpapi.New(cfg.BaseURL, cfg.Timeout, store, n, log)
	sess := session.NewManager(api, store, n, log)
	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		session: sess,
		blogs:   blog.NewClient(api, n, log),
	}
}

// requireLogin bootstraps the session and exits unless it is authenticated.
func (a *app) requireLogin(ctx context.Context) {
	a.session.Bootstrap(ctx)
	if !a.session.Snapshot().LoggedIn {
		fmt.Fprintln(os.Stderr, "login required")
		os.Exit(1)
	}
}

// ---- utils ----

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// exitUnless turns a session/resource boolean outcome into an exit code. The
// failure notification has already been printed by the executor.
func exitUnless(ok bool) {
	if !ok {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `blogctl
Usage:
  blogctl [-config file] [-debug] <cmd> [args]

Commands:
  version
  register  -u <username> -e <email> -p <password> -p2 <confirmation>
  login     -e <email> -p <password>
  logout
  verify    -e <email> -code <otp>
  passwd    -p <password> -p2 <confirmation>
  reset     -e <email>
  whoami
  list      [-page N]
  mine      [-page N]
  show      -slug <slug>
  create    -title <t> [-subtitle <s>] -content <file|-> [-publish]
  update    -slug <slug> [-title <t>] [-subtitle <s>] [-content <file|->] [-publish|-draft]
  delete    -slug <slug>
  comments  -blog <id>
  comment   -blog <id> -text <comment>
  replies   -comment <id>
  reply     -comment <id> -text <reply>
`)
	os.Exit(2)
}

// main dispatches subcommands against the configured API base URL.
func main() {
	cfgPath := flag.String("config", "", "path to config file")
	debug := flag.Bool("debug", false, "verbose request logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	if cmd == "version" {
		fmt.Printf("blogctl %s (%s)\n", version, buildDate)
		return
	}

	log := zap.NewNop()
	if *debug {
		log, _ = zap.NewDevelopment()
	}
	defer func() { _ = log.Sync() }()

	cfg := config.MustLoad(*cfgPath)
	a := newApp(cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		u := fs.String("u", "", "username")
		e := fs.String("e", "", "email")
		p := fs.String("p", "", "password")
		p2 := fs.String("p2", "", "password confirmation")
		_ = fs.Parse(args)
		if *u == "" || *e == "" || *p == "" {
			fmt.Fprintln(os.Stderr, "need -u, -e and -p")
			os.Exit(1)
		}
		if *p2 == "" {
			*p2 = *p
		}
		exitUnless(a.session.Register(ctx, *u, *e, *p, *p2))

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		e := fs.String("e", "", "email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(args)
		if *e == "" || *p == "" {
			fmt.Fprintln(os.Stderr, "need -e and -p")
			os.Exit(1)
		}
		exitUnless(a.session.Login(ctx, *e, *p))

	case "logout":
		a.session.Logout()

	case "verify":
		fs := flag.NewFlagSet("verify", flag.ExitOnError)
		e := fs.String("e", "", "email")
		code := fs.String("code", "", "one-time code")
		_ = fs.Parse(args)
		if *e == "" || *code == "" {
			fmt.Fprintln(os.Stderr, "need -e and -code")
			os.Exit(1)
		}
		exitUnless(a.session.VerifyEmail(ctx, *e, *code))

	case "passwd":
		fs := flag.NewFlagSet("passwd", flag.ExitOnError)
		p := fs.String("p", "", "new password")
		p2 := fs.String("p2", "", "confirmation")
		_ = fs.Parse(args)
		if *p == "" {
			fmt.Fprintln(os.Stderr, "need -p")
			os.Exit(1)
		}
		if *p2 == "" {
			*p2 = *p
		}
		a.requireLogin(ctx)
		exitUnless(a.session.ChangePassword(ctx, *p, *p2))

	case "reset":
		fs := flag.NewFlagSet("reset", flag.ExitOnError)
		e := fs.String("e", "", "email")
		_ = fs.Parse(args)
		if *e == "" {
			fmt.Fprintln(os.Stderr, "need -e")
			os.Exit(1)
		}
		exitUnless(a.session.RequestPasswordReset(ctx, *e))

	case "whoami":
		a.requireLogin(ctx)
		if u, ok := a.session.Profile(ctx); ok {
			printJSON(u)
			return
		}
		printJSON(a.session.Snapshot().User)

	case "list", "mine", "show", "create", "update", "delete",
		"comments", "comment", "replies", "reply":
		a.blogCmd(ctx, cmd, args)

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
	}
}
