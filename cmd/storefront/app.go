package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/elegance/jewelry-catalog/internal/infrastructure/config"
	redisdb "github.com/elegance/jewelry-catalog/internal/infrastructure/db/redis"
	"github.com/elegance/jewelry-catalog/internal/storefront/checkout"
	"github.com/elegance/jewelry-catalog/internal/storefront/client"
	"github.com/elegance/jewelry-catalog/internal/storefront/session"
	"github.com/elegance/jewelry-catalog/pkg/logger"
)

// shop carries what every command needs once Before has run.
type shop struct {
	cfg      *config.StorefrontConfig
	log      zerolog.Logger
	api      *client.Client
	store    session.Store
	composer *checkout.Composer
	out      io.Writer
	closers  []io.Closer
}

func newApp(out io.Writer) *cli.App {
	s := &shop{out: out}

	return &cli.App{
		Name:      "storefront",
		Usage:     "browse the Elegance Jewelry catalog and order over WhatsApp",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Usage: "catalog API base URL (overrides STOREFRONT_API_URL)"},
			&cli.StringFlag{Name: "shopper", Usage: "shopper id owning the cart and wishlist (overrides SHOPPER_ID)"},
			&cli.StringFlag{Name: "state-dir", Usage: "directory for the file state backend (overrides STATE_DIR)"},
			&cli.StringFlag{Name: "state-backend", Usage: "file or redis (overrides STATE_BACKEND)"},
		},
		Before: s.setup,
		After:  s.teardown,
		Commands: []*cli.Command{
			s.productsCommand(),
			s.productCommand(),
			s.filtersCommand(),
			s.cartCommand(),
			s.wishlistCommand(),
			s.checkoutCommand(),
			s.statusCommand(),
		},
	}
}

func (s *shop) setup(c *cli.Context) error {
	cfg, err := config.LoadStorefront(c.Context)
	if err != nil {
		return err
	}
	if v := c.String("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v := c.String("shopper"); v != "" {
		cfg.ShopperID = v
	}
	if v := c.String("state-dir"); v != "" {
		cfg.StateDir = v
	}
	if v := c.String("state-backend"); v != "" {
		cfg.StateBackend = v
	}
	if !session.ValidShopperID(cfg.ShopperID) {
		return fmt.Errorf("invalid shopper id %q", cfg.ShopperID)
	}
	s.cfg = cfg

	s.log = logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Output:  os.Stderr,
		Service: "storefront",
	})
	s.api = client.New(cfg.APIURL, logger.Component("api-client"))
	s.composer = checkout.NewComposer(cfg.WhatsAppNumber, cfg.ShopName)

	switch cfg.StateBackend {
	case "redis":
		rdb, err := redisdb.Connect(c.Context, redisdb.Config{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		s.closers = append(s.closers, rdb)
		s.store = redisdb.NewSessionStore(rdb, 0)
	case "file":
		dir := cfg.StateDir
		if dir == "" {
			base, err := os.UserConfigDir()
			if err != nil {
				return fmt.Errorf("resolve state dir: %w", err)
			}
			dir = filepath.Join(base, "elegance-storefront")
		}
		fs, err := session.NewFileStore(dir)
		if err != nil {
			return err
		}
		s.store = fs
	default:
		return fmt.Errorf("unknown state backend %q", cfg.StateBackend)
	}
	return nil
}

func (s *shop) teardown(*cli.Context) error {
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.log.Warn().Err(err).Msg("close failed")
		}
	}
	s.closers = nil
	return nil
}

func (s *shop) openSession(c *cli.Context) (*session.Session, error) {
	return session.Open(c.Context, s.store, s.cfg.ShopperID)
}
