package scoring

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadWeightProfiles 기본 프로필 위에 YAML 파일을 덮어씀.
// path 가 비어 있으면 기본값 그대로.
//
//	analysis:
//	  brand_weight: 0.3
//	  sentiment_weight: 0.3
//	  roi_weight: 0.4
//	compare:
//	  brand_weight: 0.4
func LoadWeightProfiles(path string) (WeightProfiles, error) {
	profiles := DefaultWeightProfiles()
	if path == "" {
		return profiles, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return profiles, fmt.Errorf("load weight profiles %s: %w", path, err)
	}

	if err := k.UnmarshalWithConf("", &profiles, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return profiles, fmt.Errorf("decode weight profiles: %w", err)
	}

	profiles.Analysis = profiles.Analysis.Clamp()
	profiles.Compare = profiles.Compare.Clamp()
	return profiles, nil
}
