package config

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (suite *ConfigTestSuite) TestValidateNodeConf() {
	conf := Node{URL: ""}

	err := validateNodeConf(conf)
	suite.Require().Error(err)

	conf.URL = "http://localhost:3013"
	err = validateNodeConf(conf)
	suite.Require().NoError(err)
}

func (suite *ConfigTestSuite) TestValidateTradeConf() {
	conf := Trade{
		SlippagePercent:     "not-a-number",
		DenominationAsset:   "full",
		DenominationToken:   "full",
		CustomTokenDecimals: -1,
	}

	err := validateTradeConf(conf)
	suite.Require().Error(err)

	conf.SlippagePercent = "3"
	conf.DenominationToken = "bogus"
	err = validateTradeConf(conf)
	suite.Require().Error(err)

	conf.DenominationToken = "atto"
	err = validateTradeConf(conf)
	suite.Require().NoError(err)
}

func (suite *ConfigTestSuite) TestTradeDenomination() {
	conf := Trade{DenominationAsset: "aettos", DenominationToken: "full", CustomTokenDecimals: -1}
	d := conf.Denomination()
	suite.Require().Nil(d.CustomTokenDecimals)

	conf.CustomTokenDecimals = 6
	d = conf.Denomination()
	suite.Require().NotNil(d.CustomTokenDecimals)
	suite.Require().Equal(int64(6), *d.CustomTokenDecimals)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
