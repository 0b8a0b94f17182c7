package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"rotharc/database"
	productRepo "rotharc/database/repository/product"
	"rotharc/models"
	"rotharc/services/catalogue"
	"rotharc/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Products []models.Product `yaml:"products"`
}

func loadProducts(r io.Reader) ([]models.Product, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(f.Products) == 0 {
		return nil, errors.New("seed file lists no products")
	}
	return f.Products, nil
}

func newSeedCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the product catalogue from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			products, err := loadProducts(f)
			if err != nil {
				return err
			}

			if err := database.InitDB(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			defer database.Close(ctx) //nolint:errcheck

			logger := utils.GetLogger()
			svc := catalogue.NewCatalogueService(productRepo.NewMongoProductRepo(database.DB(), logger), logger)
			n, err := svc.Import(ctx, products)
			if err != nil {
				return err
			}
			logger.Info("Catalogue seeded", zap.Int("products", n), zap.String("file", path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "config/products.yaml", "YAML file with a products list")
	return cmd
}
