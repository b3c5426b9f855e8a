package export

import (
	"Lighthouse/internal/model"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// 导出文件的固定表头，与入库字段一一对应
var recordHeader = []string{
	"video_id", "author", "text", "published_at", "like_count",
	"sentiment", "raw_score", "scaled_score", "benchmark",
	"sentiment_confidence", "emotion", "emotion_confidence", "fetched_at",
}

// runMetadata 每次运行追加到 metadata.json 的一行
type runMetadata struct {
	Brand     string `json:"brand"`
	Keyword   string `json:"keyword"`
	Records   int    `json:"records"`
	Timestamp string `json:"timestamp"`
	File      string `json:"file"`
}

// Writer 把一次抓取运行的结果落盘为 CSV 或 XLSX 文件
type Writer struct {
	dataDir string
}

func NewWriter(dataDir string) *Writer {
	return &Writer{dataDir: dataDir}
}

// WriteCSV 导出CSV文件并追加运行元数据，返回文件路径
func (w *Writer) WriteCSV(brand string, keyword string, comments []*model.YouTubeComment) (string, error) {
	path, err := w.prepareRunPath(brand, keyword, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "创建CSV文件失败")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err = writer.Write(recordHeader); err != nil {
		return "", errors.Wrap(err, "写入CSV表头失败")
	}
	for _, comment := range comments {
		if err = writer.Write(recordRow(comment)); err != nil {
			return "", errors.Wrap(err, "写入CSV数据行失败")
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		return "", errors.Wrap(err, "刷写CSV文件失败")
	}

	if err = w.appendMetadata(brand, keyword, path, len(comments)); err != nil {
		return "", err
	}
	return path, nil
}

// WriteXLSX 导出XLSX文件并追加运行元数据，返回文件路径
func (w *Writer) WriteXLSX(brand string, keyword string, comments []*model.YouTubeComment) (string, error) {
	path, err := w.prepareRunPath(brand, keyword, "xlsx")
	if err != nil {
		return "", err
	}

	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	if err = book.SetSheetRow(sheet, "A1", &recordHeader); err != nil {
		return "", errors.Wrap(err, "写入XLSX表头失败")
	}
	for i, comment := range comments {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := recordRow(comment)
		if err = book.SetSheetRow(sheet, cell, &row); err != nil {
			return "", errors.Wrap(err, "写入XLSX数据行失败")
		}
	}
	if err = book.SaveAs(path); err != nil {
		return "", errors.Wrap(err, "保存XLSX文件失败")
	}

	if err = w.appendMetadata(brand, keyword, path, len(comments)); err != nil {
		return "", err
	}
	return path, nil
}

// prepareRunPath 生成 <dataDir>/youtube/<brand>/<日期>/run_<时分秒>_<keyword>.<ext> 并建目录
func (w *Writer) prepareRunPath(brand string, keyword string, ext string) (string, error) {
	now := time.Now()
	dir := filepath.Join(w.dataDir, "youtube", slugify(brand), now.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "创建导出目录失败")
	}
	name := fmt.Sprintf("run_%s_%s.%s", now.Format("150405"), slugify(keyword), ext)
	return filepath.Join(dir, name), nil
}

// appendMetadata 在运行目录下以JSON行的形式追加本次运行的元数据
func (w *Writer) appendMetadata(brand string, keyword string, path string, records int) error {
	meta := runMetadata{
		Brand:     brand,
		Keyword:   keyword,
		Records:   records,
		Timestamp: time.Now().Format(time.RFC3339),
		File:      filepath.Base(path),
	}
	line, err := json.Marshal(meta)
	if err != nil {
		return errors.Wrap(err, "序列化运行元数据失败")
	}

	metaPath := filepath.Join(filepath.Dir(path), "metadata.json")
	file, err := os.OpenFile(metaPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "打开元数据文件失败")
	}
	defer file.Close()

	if _, err = file.Write(append(line, '\n')); err != nil {
		return errors.Wrap(err, "追加运行元数据失败")
	}
	return nil
}

func recordRow(c *model.YouTubeComment) []string {
	return []string{
		c.VideoID,
		c.Author,
		c.Text,
		c.PublishedAt.Format(time.RFC3339),
		strconv.Itoa(c.LikeCount),
		c.Sentiment,
		strconv.Itoa(c.RawScore),
		strconv.FormatFloat(c.ScaledScore, 'f', 2, 64),
		strconv.Itoa(c.Benchmark),
		strconv.FormatFloat(c.SentimentConfidence, 'f', 4, 64),
		c.Emotion,
		strconv.FormatFloat(c.EmotionConfidence, 'f', 4, 64),
		c.FetchedAt.Format(time.RFC3339),
	}
}

// slugify 目录与文件名片段统一小写并以下划线连接
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}
