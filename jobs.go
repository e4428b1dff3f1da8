package sealpay

func (s *SealPay) runJobs() {
	s.scheduler.Every(1).Minute().SingletonMode().Do(s.flushStatistic)
	s.scheduler.Every(30).Seconds().SingletonMode().Do(s.updateCustodyBalance)

	s.scheduler.StartAsync()
}

func (s *SealPay) flushStatistic() {
	if s.stats == nil {
		return
	}
	if err := s.stats.Flush(); err != nil {
		log.Error("s.stats.Flush()", "err", err)
	}
}

func (s *SealPay) updateCustodyBalance() {
	custody := s.ledger.Custody()
	for _, tok := range s.ledger.Tokens() {
		metricCustodyBalance(tok.Symbol(), tok.BalanceOf(custody))
	}
}
