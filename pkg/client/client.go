//
//  Copyright © Zscaler Inc. All rights reserved.
//

// Package client constructs authenticated Zscaler SDK service handles for
// the product APIs exposed as tools.
//
// Two authentication paths exist. The default OneAPI path drives every
// product through a single OAuth2 client against the Zidentity service.
// The legacy path builds one client per product from that product's
// historical credentials and is selected with ZSCALER_USE_LEGACY_CLIENT.
// In both cases construction is lazy: a product's client is built on the
// first tool call that needs it, so a server registered for several
// products does not authenticate against products that are never used.
package client

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zcc"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zdx"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zia"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zpa"

	"github.com/zscaler/zscaler-mcp-server-sub000/internal/logging"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/config"
)

var logger = logging.GetLogger("client")

// userAgent identifies this server in API audit logs.
const userAgent = "zscaler-mcp-server"

type lazyService struct {
	once    sync.Once
	service *zscaler.Service
	err     error
}

func (l *lazyService) get(build func() (*zscaler.Service, error)) (*zscaler.Service, error) {
	l.once.Do(func() {
		l.service, l.err = build()
	})
	return l.service, l.err
}

// Client holds the resolved credentials and the lazily constructed
// per-product SDK services.
type Client struct {
	creds config.Credentials

	oneAPI lazyService
	ziaSvc lazyService
	zpaSvc lazyService
	zdxSvc lazyService
	zccSvc lazyService
}

// NewClient creates a client from resolved credentials. OneAPI credentials
// are validated eagerly so that misconfiguration surfaces at startup rather
// than on the first tool call; legacy credentials are validated per product
// on first use, since a legacy deployment rarely configures every product.
func NewClient(creds config.Credentials) (*Client, error) {
	if !creds.UseLegacy {
		if err := creds.ValidateOneAPI(); err != nil {
			return nil, err
		}
	}
	return &Client{creds: creds}, nil
}

func (c *Client) buildOneAPI() (*zscaler.Service, error) {
	logger.Debugf("building OneAPI client for vanity domain %q", c.creds.VanityDomain)

	opts := []zscaler.ConfigSetter{
		zscaler.WithClientID(c.creds.ClientID),
		zscaler.WithVanityDomain(c.creds.VanityDomain),
		zscaler.WithUserAgentExtra(userAgent),
	}
	if c.creds.PrivateKey != "" {
		opts = append(opts, zscaler.WithPrivateKey(c.creds.PrivateKey))
	} else {
		opts = append(opts, zscaler.WithClientSecret(c.creds.ClientSecret))
	}
	if c.creds.Cloud != "" {
		opts = append(opts, zscaler.WithZscalerCloud(c.creds.Cloud))
	}
	if c.creds.CustomerID != "" {
		opts = append(opts, zscaler.WithZPACustomerID(c.creds.CustomerID))
	}
	if c.creds.MicrotenantID != "" {
		opts = append(opts, zscaler.WithZPAMicrotenantID(c.creds.MicrotenantID))
	}

	conf, err := zscaler.NewConfiguration(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "configuring OneAPI client")
	}

	service, err := zscaler.NewOneAPIClient(conf)
	if err != nil {
		return nil, errors.Wrap(err, "creating OneAPI client")
	}
	return service, nil
}

// ZIAService returns the SDK service handle for ZIA calls.
func (c *Client) ZIAService() (*zscaler.Service, error) {
	if !c.creds.UseLegacy {
		return c.oneAPI.get(c.buildOneAPI)
	}

	return c.ziaSvc.get(func() (*zscaler.Service, error) {
		l := c.creds.Legacy
		if l.ZIAUsername == "" || l.ZIAPassword == "" || l.ZIAAPIKey == "" {
			return nil, errors.New("incomplete legacy ZIA credentials: set ZIA_USERNAME, ZIA_PASSWORD, ZIA_API_KEY and ZIA_CLOUD")
		}
		logger.Debugf("building legacy ZIA client for cloud %q", l.ZIACloud)
		conf, err := zia.NewConfiguration(
			zia.WithZiaUsername(l.ZIAUsername),
			zia.WithZiaPassword(l.ZIAPassword),
			zia.WithZiaAPIKey(l.ZIAAPIKey),
			zia.WithZiaCloud(l.ZIACloud),
			zia.WithUserAgentExtra(userAgent),
		)
		if err != nil {
			return nil, errors.Wrap(err, "configuring legacy ZIA client")
		}
		service, err := zscaler.NewLegacyZiaClient(conf)
		if err != nil {
			return nil, errors.Wrap(err, "creating legacy ZIA client")
		}
		return service, nil
	})
}

// ZPAService returns the SDK service handle for ZPA calls.
func (c *Client) ZPAService() (*zscaler.Service, error) {
	if !c.creds.UseLegacy {
		return c.oneAPI.get(c.buildOneAPI)
	}

	return c.zpaSvc.get(func() (*zscaler.Service, error) {
		l := c.creds.Legacy
		if l.ZPAClientID == "" || l.ZPAClientSecret == "" || l.ZPACustomerID == "" {
			return nil, errors.New("incomplete legacy ZPA credentials: set ZPA_CLIENT_ID, ZPA_CLIENT_SECRET and ZPA_CUSTOMER_ID")
		}
		logger.Debugf("building legacy ZPA client for customer %q", l.ZPACustomerID)
		conf, err := zpa.NewConfiguration(
			zpa.WithZPAClientID(l.ZPAClientID),
			zpa.WithZPAClientSecret(l.ZPAClientSecret),
			zpa.WithZPACustomerID(l.ZPACustomerID),
			zpa.WithZPACloud(l.ZPACloud),
			zpa.WithUserAgentExtra(userAgent),
		)
		if err != nil {
			return nil, errors.Wrap(err, "configuring legacy ZPA client")
		}
		service, err := zscaler.NewLegacyZpaClient(conf)
		if err != nil {
			return nil, errors.Wrap(err, "creating legacy ZPA client")
		}
		return service, nil
	})
}

// ZDXService returns the SDK service handle for ZDX calls.
func (c *Client) ZDXService() (*zscaler.Service, error) {
	if !c.creds.UseLegacy {
		return c.oneAPI.get(c.buildOneAPI)
	}

	return c.zdxSvc.get(func() (*zscaler.Service, error) {
		l := c.creds.Legacy
		if l.ZDXAPIKeyID == "" || l.ZDXAPISecret == "" {
			return nil, errors.New("incomplete legacy ZDX credentials: set ZDX_API_KEY_ID and ZDX_API_SECRET")
		}
		logger.Debugf("building legacy ZDX client")
		conf, err := zdx.NewConfiguration(
			zdx.WithZDXAPIKeyID(l.ZDXAPIKeyID),
			zdx.WithZDXAPISecret(l.ZDXAPISecret),
			zdx.WithUserAgentExtra(userAgent),
		)
		if err != nil {
			return nil, errors.Wrap(err, "configuring legacy ZDX client")
		}
		service, err := zscaler.NewLegacyZdxClient(conf)
		if err != nil {
			return nil, errors.Wrap(err, "creating legacy ZDX client")
		}
		return service, nil
	})
}

// ZCCService returns the SDK service handle for ZCC calls.
func (c *Client) ZCCService() (*zscaler.Service, error) {
	if !c.creds.UseLegacy {
		return c.oneAPI.get(c.buildOneAPI)
	}

	return c.zccSvc.get(func() (*zscaler.Service, error) {
		l := c.creds.Legacy
		if l.ZCCClientID == "" || l.ZCCClientSecret == "" {
			return nil, errors.New("incomplete legacy ZCC credentials: set ZCC_CLIENT_ID, ZCC_CLIENT_SECRET and ZCC_CLOUD")
		}
		logger.Debugf("building legacy ZCC client for cloud %q", l.ZCCCloud)
		conf, err := zcc.NewConfiguration(
			zcc.WithZCCClientID(l.ZCCClientID),
			zcc.WithZCCClientSecret(l.ZCCClientSecret),
			zcc.WithZCCCloud(l.ZCCCloud),
			zcc.WithUserAgentExtra(userAgent),
		)
		if err != nil {
			return nil, errors.Wrap(err, "configuring legacy ZCC client")
		}
		service, err := zscaler.NewLegacyZccClient(conf)
		if err != nil {
			return nil, errors.Wrap(err, "creating legacy ZCC client")
		}
		return service, nil
	})
}
