// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とミドルウェアから利用する。
type MetricsCollector interface {
	RecordEntryAdded(category string)
	RecordEntryMoved()
	RecordEntryRemoved()
	RecordCommentCreated()
	RecordLogin(method string)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	entriesAdded    *prometheus.CounterVec
	entriesMoved    prometheus.Counter
	entriesRemoved  prometheus.Counter
	commentsCreated prometheus.Counter
	logins          *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		entriesAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinelist_entries_added_total",
			Help: "リストに追加された映画の合計数（カテゴリ別）",
		}, []string{"category"}),
		entriesMoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinelist_entries_moved_total",
			Help: "カテゴリ間を移動した映画の合計数",
		}),
		entriesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinelist_entries_removed_total",
			Help: "リストから削除された映画の合計数",
		}),
		commentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinelist_comments_created_total",
			Help: "投稿されたコメントの合計数",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinelist_logins_total",
			Help: "ログイン成功の合計数（認証方式別）",
		}, []string{"method"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinelist_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.entriesAdded,
		c.entriesMoved,
		c.entriesRemoved,
		c.commentsCreated,
		c.logins,
		c.httpStatus,
	)

	return c
}

// RecordEntryAdded はリストへの映画追加を記録する。
func (c *Collector) RecordEntryAdded(category string) {
	c.entriesAdded.WithLabelValues(category).Inc()
}

// RecordEntryMoved はカテゴリ間の移動を記録する。
func (c *Collector) RecordEntryMoved() {
	c.entriesMoved.Inc()
}

// RecordEntryRemoved はリストからの削除を記録する。
func (c *Collector) RecordEntryRemoved() {
	c.entriesRemoved.Inc()
}

// RecordCommentCreated はコメント投稿を記録する。
func (c *Collector) RecordCommentCreated() {
	c.commentsCreated.Inc()
}

// RecordLogin はログイン成功を記録する。methodは"password"または"google"。
func (c *Collector) RecordLogin(method string) {
	c.logins.WithLabelValues(method).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
