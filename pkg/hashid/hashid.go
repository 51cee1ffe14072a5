package hashid

import (
	"Storefront/config"
	"errors"

	"github.com/speps/go-hashids/v2"
)

var ErrInvalidCode = errors.New("invalid code")

// Codec 订单号对外展示, 避免暴露自增 ID
type Codec struct {
	h *hashids.HashID
}

func New(salt string) (*Codec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 10
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &Codec{h: h}, nil
}

func (c *Codec) Encode(id int64) string {
	s, err := c.h.EncodeInt64([]int64{id})
	if err != nil {
		return ""
	}
	return s
}

func (c *Codec) Decode(code string) (int64, error) {
	ids, err := c.h.DecodeInt64WithError(code)
	if err != nil || len(ids) != 1 {
		return 0, ErrInvalidCode
	}
	return ids[0], nil
}

func NewFromConfig(conf *config.Config) (*Codec, error) {
	return New(conf.App.HashSalt)
}
