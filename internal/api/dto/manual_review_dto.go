package dto

// ManualUploadResultDTO 人工评价CSV导入结果
type ManualUploadResultDTO struct {
	Inserted int `json:"inserted"`
}

// OrganizationLookupErrorDTO 组织名解析失败时返回候选名称辅助纠错
type OrganizationLookupErrorDTO struct {
	Name       string   `json:"name"`
	Candidates []string `json:"candidates"`
}
