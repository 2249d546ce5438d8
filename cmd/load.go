package cmd

import (
	"context"
	"fmt"

	"github.com/KaramelBytes/zillow-eda/internal/dataset"
	"github.com/KaramelBytes/zillow-eda/internal/split"
)

// loadTable acquires and cleans the property table using the effective configuration.
func loadTable(ctx context.Context) (*dataset.Table, dataset.Origin, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, "", err
	}
	opt := dataset.DefaultOptions()
	if c.CacheFile != "" {
		opt.CacheFile = c.CacheFile
	}
	if c.DBName != "" {
		opt.Database = c.DBName
	}
	if c.Category != "" {
		opt.Category = c.Category
	}
	opt.URL = c.URLFunc()
	opt.Logger = logger

	raw, origin, err := dataset.Acquire(ctx, opt)
	if err != nil {
		return nil, "", err
	}
	t, err := dataset.Prepare(raw)
	if err != nil {
		return nil, "", err
	}
	return t, origin, nil
}

// selectSubset returns the whole table for "all", otherwise the named split partition.
func selectSubset(t *dataset.Table, subset string, seed int64) (*dataset.Table, error) {
	switch subset {
	case "", "all":
		return t, nil
	case "train", "validate", "test":
	default:
		return nil, fmt.Errorf("unsupported --subset: %s (use all|train|validate|test)", subset)
	}
	res, err := split.Split(t, seed)
	if err != nil {
		return nil, err
	}
	switch subset {
	case "train":
		return res.Train, nil
	case "validate":
		return res.Validate, nil
	}
	return res.Test, nil
}
