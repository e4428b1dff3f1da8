package sealpay

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sealpay/sealpay/common"
	"github.com/sealpay/sealpay/schema"
	"github.com/shopspring/decimal"
)

func (s *SealPay) runAPI(port string) {
	s.routes()
	if err := s.engine.Run(port); err != nil {
		panic(err)
	}
}

func (s *SealPay) routes() {
	r := s.engine
	r.Use(common.CORSMiddleware())
	r.Use(common.LimiterMiddleware(600, "M", nil))
	v1 := r.Group("/")
	{
		// listing registry
		v1.POST("/item", s.createItem)
		v1.GET("/item/:fingerprint", s.getItem)
		v1.GET("/item/:fingerprint/expired", s.getItemExpired)

		// settlement
		v1.POST("/purchase", s.purchase)
		v1.GET("/purchase/:fingerprint/:buyer", s.getPurchase)
		v1.GET("/stats", s.getStats)

		// configuration authority
		v1.GET("/config", s.getConfig)
		v1.POST("/config/fee", s.setFeeBps)
		v1.POST("/config/recipient", s.setFeeRecipient)
		v1.POST("/config/token", s.setPaymentToken)
		v1.POST("/config/owner", s.transferOwnership)
	}
}

func (s *SealPay) createItem(c *gin.Context) {
	req := schema.CreateItemReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	item, err := s.ledger.CreateItem(req.Caller, req.Fingerprint, req.Price, req.ExpiresAt)
	if err != nil {
		rejectResponse(c, err)
		return
	}
	s.cache.SetItem(item)
	c.JSON(http.StatusOK, item)
}

func (s *SealPay) getItem(c *gin.Context) {
	fingerprint := c.Param("fingerprint")
	item, ok := s.cache.GetItem(fingerprint)
	if !ok {
		var err error
		item, err = s.ledger.GetItem(fingerprint)
		if err != nil {
			rejectResponse(c, err)
			return
		}
		s.cache.SetItem(item)
	}

	resp := schema.RespItem{
		Item:    item,
		Expired: s.ledger.IsExpired(item.Fingerprint),
	}
	if cfg, err := s.ledger.Config(); err == nil {
		if tok, ok := s.ledger.Token(cfg.PaymentToken); ok {
			resp.DisplayPrice = displayAmount(item.Price, tok.Decimals())
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *SealPay) getItemExpired(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"expired": s.ledger.IsExpired(c.Param("fingerprint")),
	})
}

func (s *SealPay) purchase(c *gin.Context) {
	req := schema.PurchaseReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	receipt, err := s.settle.Purchase(req.Caller, req.Fingerprint)
	if err != nil {
		rejectResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (s *SealPay) getPurchase(c *gin.Context) {
	receipt := s.ledger.GetPurchaseDetails(c.Param("fingerprint"), c.Param("buyer"))
	c.JSON(http.StatusOK, receipt)
}

func (s *SealPay) getStats(c *gin.Context) {
	if s.stats == nil {
		c.JSON(http.StatusNotFound, schema.RespErr{Err: "statistics_disabled"})
		return
	}
	c.JSON(http.StatusOK, s.stats.Summary())
}

func (s *SealPay) getConfig(c *gin.Context) {
	cfg, err := s.ledger.Config()
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *SealPay) setFeeBps(c *gin.Context) {
	req := schema.SetFeeBpsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.ledger.SetFeeBasisPoints(req.Caller, req.FeeBps); err != nil {
		rejectResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *SealPay) setFeeRecipient(c *gin.Context) {
	req := schema.SetAddressReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.ledger.SetFeeRecipient(req.Caller, req.Address); err != nil {
		rejectResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *SealPay) setPaymentToken(c *gin.Context) {
	req := schema.SetAddressReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.ledger.SetPaymentToken(req.Caller, req.Address); err != nil {
		rejectResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *SealPay) transferOwnership(c *gin.Context) {
	req := schema.SetAddressReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.ledger.TransferOwnership(req.Caller, req.Address); err != nil {
		rejectResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// displayAmount scales a smallest-unit amount by the token decimals.
func displayAmount(amount uint64, decimals int) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), int32(-decimals)).String()
}

var domainErrs = []error{
	ErrItemExist, ErrInvalidPrice, ErrInvalidExpiration, ErrInvalidFingerprint,
	ErrItemNotExist, ErrSelfPurchase, ErrAlreadyPurchased, ErrItemExpired, ErrTransferFailed,
	ErrUnauthorized, ErrInvalidAddress, ErrFeeTooHigh,
}

// rejectResponse maps domain rejections to 400 and everything else to 500;
// a caller always sees the specific error kind, never an opaque failure.
func rejectResponse(c *gin.Context, err error) {
	for _, de := range domainErrs {
		if errors.Is(err, de) {
			errorResponse(c, err.Error())
			return
		}
	}
	internalErrorResponse(c, err.Error())
}

func errorResponse(c *gin.Context, err string) {
	// client error
	c.JSON(http.StatusBadRequest, schema.RespErr{
		Err: err,
	})
}

func internalErrorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, schema.RespErr{
		Err: err,
	})
}
