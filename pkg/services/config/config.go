package config

import (
	"strings"

	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/spf13/viper"
)

const (
	defaultTagKey   = "aws-apn-id"
	defaultTagValue = "pc:3jtjsihjubajawpl401j5b27s"
)

// Defaults holds the process-wide settings read once at startup. Every
// field can be overridden per invocation through the run request.
type Defaults struct {
	TagKey        string `mapstructure:"tag_key"`
	TagValue      string `mapstructure:"tag_value"`
	DryRun        bool   `mapstructure:"dry_run"`
	TargetRegions string `mapstructure:"target_regions"`
	AmbientRegion string `mapstructure:"aws_region"`
}

// Load reads the defaults from the environment (TAG_KEY, TAG_VALUE,
// DRY_RUN, TARGET_REGIONS, AWS_REGION).
func Load() (*Defaults, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("tag_key", defaultTagKey)
	v.SetDefault("tag_value", defaultTagValue)
	v.SetDefault("dry_run", false)
	v.SetDefault("target_regions", "")
	v.SetDefault("aws_region", "us-east-1")

	var d Defaults
	if err := v.Unmarshal(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Tag returns the configured default tag.
func (d *Defaults) Tag() domain.Tag {
	return domain.Tag{Key: d.TagKey, Value: d.TagValue}
}

// Regions returns the default region list: the TARGET_REGIONS override when
// set, otherwise the single ambient region.
func (d *Defaults) Regions() []string {
	if d.TargetRegions == "" {
		return []string{d.AmbientRegion}
	}

	var regions []string
	for _, r := range strings.Split(d.TargetRegions, ",") {
		if r = strings.TrimSpace(r); r != "" {
			regions = append(regions, r)
		}
	}
	if len(regions) == 0 {
		return []string{d.AmbientRegion}
	}
	return regions
}
