package sdk

import (
	"fmt"

	"github.com/sealpay/sealpay/schema"
	"github.com/tidwall/gjson"
	"gopkg.in/h2non/gentleman.v2"
)

// Client talks to a sealpay node over HTTP.
type Client struct {
	SCli *gentleman.Client
}

func New(sealUrl string) *Client {
	return &Client{
		SCli: gentleman.New().URL(sealUrl),
	}
}

func (c *Client) CreateItem(caller, fingerprint string, price uint64, expiresAt int64) (schema.Item, error) {
	req := c.SCli.Post()
	req.AddPath("/item")
	req.JSON(schema.CreateItemReq{
		Caller:      caller,
		Fingerprint: fingerprint,
		Price:       price,
		ExpiresAt:   expiresAt,
	})
	resp, err := req.Send()
	if err != nil {
		return schema.Item{}, err
	}
	defer resp.Close()
	if !resp.Ok {
		return schema.Item{}, respError(resp.Bytes(), resp.StatusCode)
	}
	item := schema.Item{}
	err = resp.JSON(&item)
	return item, err
}

func (c *Client) GetItem(fingerprint string) (schema.RespItem, error) {
	req := c.SCli.Get()
	req.AddPath(fmt.Sprintf("/item/%s", fingerprint))
	resp, err := req.Send()
	if err != nil {
		return schema.RespItem{}, err
	}
	defer resp.Close()
	if !resp.Ok {
		return schema.RespItem{}, respError(resp.Bytes(), resp.StatusCode)
	}
	item := schema.RespItem{}
	err = resp.JSON(&item)
	return item, err
}

func (c *Client) IsExpired(fingerprint string) (bool, error) {
	req := c.SCli.Get()
	req.AddPath(fmt.Sprintf("/item/%s/expired", fingerprint))
	resp, err := req.Send()
	if err != nil {
		return false, err
	}
	defer resp.Close()
	if !resp.Ok {
		return false, respError(resp.Bytes(), resp.StatusCode)
	}
	return gjson.GetBytes(resp.Bytes(), "expired").Bool(), nil
}

func (c *Client) Purchase(caller, fingerprint string) (schema.Receipt, error) {
	req := c.SCli.Post()
	req.AddPath("/purchase")
	req.JSON(schema.PurchaseReq{
		Caller:      caller,
		Fingerprint: fingerprint,
	})
	resp, err := req.Send()
	if err != nil {
		return schema.Receipt{}, err
	}
	defer resp.Close()
	if !resp.Ok {
		return schema.Receipt{}, respError(resp.Bytes(), resp.StatusCode)
	}
	receipt := schema.Receipt{}
	err = resp.JSON(&receipt)
	return receipt, err
}

// GetPurchaseDetails returns the zero-valued receipt when the pair never
// purchased, mirroring the node semantics.
func (c *Client) GetPurchaseDetails(fingerprint, buyer string) (schema.Receipt, error) {
	req := c.SCli.Get()
	req.AddPath(fmt.Sprintf("/purchase/%s/%s", fingerprint, buyer))
	resp, err := req.Send()
	if err != nil {
		return schema.Receipt{}, err
	}
	defer resp.Close()
	if !resp.Ok {
		return schema.Receipt{}, respError(resp.Bytes(), resp.StatusCode)
	}
	receipt := schema.Receipt{}
	err = resp.JSON(&receipt)
	return receipt, err
}

func (c *Client) HasPurchased(fingerprint, buyer string) (bool, error) {
	receipt, err := c.GetPurchaseDetails(fingerprint, buyer)
	if err != nil {
		return false, err
	}
	return receipt.Purchased(), nil
}

func (c *Client) GetStats() (schema.RespStats, error) {
	req := c.SCli.Get()
	req.AddPath("/stats")
	resp, err := req.Send()
	if err != nil {
		return schema.RespStats{}, err
	}
	defer resp.Close()
	if !resp.Ok {
		return schema.RespStats{}, respError(resp.Bytes(), resp.StatusCode)
	}
	stats := schema.RespStats{}
	err = resp.JSON(&stats)
	return stats, err
}

func (c *Client) GetConfig() (schema.MarketConfig, error) {
	req := c.SCli.Get()
	req.AddPath("/config")
	resp, err := req.Send()
	if err != nil {
		return schema.MarketConfig{}, err
	}
	defer resp.Close()
	if !resp.Ok {
		return schema.MarketConfig{}, respError(resp.Bytes(), resp.StatusCode)
	}
	cfg := schema.MarketConfig{}
	err = resp.JSON(&cfg)
	return cfg, err
}

func (c *Client) SetFeeBasisPoints(caller string, feeBps uint64) error {
	return c.postConfig("/config/fee", schema.SetFeeBpsReq{Caller: caller, FeeBps: feeBps})
}

func (c *Client) SetFeeRecipient(caller, address string) error {
	return c.postConfig("/config/recipient", schema.SetAddressReq{Caller: caller, Address: address})
}

func (c *Client) SetPaymentToken(caller, address string) error {
	return c.postConfig("/config/token", schema.SetAddressReq{Caller: caller, Address: address})
}

func (c *Client) TransferOwnership(caller, address string) error {
	return c.postConfig("/config/owner", schema.SetAddressReq{Caller: caller, Address: address})
}

func (c *Client) postConfig(path string, body interface{}) error {
	req := c.SCli.Post()
	req.AddPath(path)
	req.JSON(body)
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return respError(resp.Bytes(), resp.StatusCode)
	}
	return nil
}

func respError(body []byte, statusCode int) error {
	errMsg := gjson.GetBytes(body, "error").String()
	if errMsg == "" {
		errMsg = string(body)
	}
	return fmt.Errorf("resp failed; http code: %d, errMsg: %s", statusCode, errMsg)
}
