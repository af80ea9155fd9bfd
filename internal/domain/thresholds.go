package domain

// Thresholds are the caller-supplied knobs of the rule engine. Everything
// else the rules compare against is a fixed constant.
type Thresholds struct {
	TargetACOS        float64 `json:"target_acos" yaml:"target_acos"`
	MinSpend          float64 `json:"min_spend" yaml:"min_spend"`
	MinClicks         int     `json:"min_clicks" yaml:"min_clicks"`
	MinOrders         int     `json:"min_orders" yaml:"min_orders"`
	UseNegativePhrase bool    `json:"use_negative_phrase" yaml:"use_negative_phrase"`
}

// DefaultThresholds returns the thresholds used when nothing is configured.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TargetACOS: 30,
		MinSpend:   10,
		MinClicks:  5,
		MinOrders:  3,
	}
}
