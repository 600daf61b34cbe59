package corpus

// 公式テンプレートの提供元ラベル
const (
	sourceRegistrationAuthority = "ADGM Registration Authority"
	sourceLegalFramework        = "ADGM Legal Framework"

	contentTypeTemplate   = "official_template"
	contentTypeRegulation = "official_regulation"
)

// RegulationsDocumentID は合成された規則サマリーチャンクに付与する固定文書ID
const RegulationsDocumentID = "adgm_regulations_2020"

// DefaultManifest はADGM公式テンプレートの固定マニフェストを返す
func DefaultManifest() []ManifestEntry {
	return []ManifestEntry{
		{
			Filename:     "model_articles_shares.docx",
			URL:          "https://assets.adgm.com/download/assets/adgm-ra-model-articles-private-company-limited-by-shares.docx/015402647f0111ef91cdea7ac70a8286",
			ContentType:  contentTypeTemplate,
			Category:     "incorporation",
			DocumentType: "Model Articles - Private Company Limited by Shares",
			Source:       sourceRegistrationAuthority,
		},
		{
			Filename:     "model_articles_guarantee.docx",
			URL:          "https://assets.adgm.com/download/assets/adgm-ra-model-articles-private-company-limited-by-guarantee.docx/e6d3adc05b1711ef9f15a617eb0b5f27",
			ContentType:  contentTypeTemplate,
			Category:     "incorporation",
			DocumentType: "Model Articles - Private Company Limited by Guarantee",
			Source:       sourceRegistrationAuthority,
		},
		{
			Filename:     "board_resolution_business_activities.docx",
			URL:          "https://assets.adgm.com/download/assets/Templates_BoardReso_BusinessActivitiesChange-v1-20220107.docx/c4866d8c5b0011efbb2c8ea8406205f9",
			ContentType:  contentTypeTemplate,
			Category:     "corporate_governance",
			DocumentType: "Board Resolution - Business Activities Change",
			Source:       sourceRegistrationAuthority,
		},
		{
			Filename:     "board_resolution_trade_name.docx",
			URL:          "https://assets.adgm.com/download/assets/Templates_BoardReso_TradeName-v1-20220107.docx/90dd74085b0511ef98b1fe647dc54e16",
			ContentType:  contentTypeTemplate,
			Category:     "corporate_governance",
			DocumentType: "Board Resolution - Trade Name",
			Source:       sourceRegistrationAuthority,
		},
		{
			Filename:     "board_resolution_directors_resignation.docx",
			URL:          "https://assets.adgm.com/download/assets/Templates_BoardReso_DirectorsResignation-v1-20220107.docx/86ea7d805b0311efabc1da675695d30e",
			ContentType:  contentTypeTemplate,
			Category:     "corporate_governance",
			DocumentType: "Board Resolution - Directors Resignation",
			Source:       sourceRegistrationAuthority,
		},
		{
			Filename:     "shareholders_resolution_general.docx",
			URL:          "https://assets.adgm.com/download/assets/UNOFFICIAL---Template-Shareholders-Resolution.docx/44fe98a85d4611efac830241e0190a99",
			ContentType:  contentTypeTemplate,
			Category:     "corporate_governance",
			DocumentType: "Shareholders Resolution - General",
			Source:       sourceRegistrationAuthority,
		},
		{
			Filename:     "incorporation_resolution_individual.docx",
			URL:          "https://assets.adgm.com/download/assets/adgm-ra-resolution-single-individual-shareholder-LTD-incorporation-v2.docx/f160dbe06c3911efa22adaed20215b4a",
			ContentType:  contentTypeTemplate,
			Category:     "incorporation",
			DocumentType: "Incorporation Resolution - Individual Shareholder",
			Source:       sourceRegistrationAuthority,
		},
		{
			Filename:     "incorporation_resolution_corporate.docx",
			URL:          "https://assets.adgm.com/download/assets/adgm-ra-resolution-incorporation-ltd-corporate-shareholder-v2.docx/983698446c3811efbf7cfe7434582912",
			ContentType:  contentTypeTemplate,
			Category:     "incorporation",
			DocumentType: "Incorporation Resolution - Corporate Shareholder",
			Source:       sourceRegistrationAuthority,
		},
	}
}

// regulationsEntry は合成チャンク用のマニフェスト相当メタデータ
func regulationsEntry() ManifestEntry {
	return ManifestEntry{
		Filename:     "adgm_companies_regulations_2020.txt",
		ContentType:  contentTypeRegulation,
		Category:     "legal_framework",
		DocumentType: "ADGM Companies Regulations 2020",
		Source:       sourceLegalFramework,
	}
}

// RegulationsSummary はADGM Companies Regulations 2020の要約テキストを返す
// 全文PDFは取得が難しいため、主要規定の固定サマリーを合成チャンクとして取り込む
func RegulationsSummary() string {
	return `ADGM COMPANIES REGULATIONS 2020 - KEY COMPLIANCE PROVISIONS

JURISDICTION REQUIREMENTS:
- All companies incorporated in ADGM are subject to ADGM law and the exclusive jurisdiction of ADGM Courts
- Any reference to UAE Federal Courts, Dubai Courts, or Abu Dhabi Courts is non-compliant
- Documents must reference ADGM Companies Regulations 2020, not UAE Commercial Code

INCORPORATION REQUIREMENTS:
- Private companies must use ADGM Model Articles or compliant custom articles
- No Memorandum of Association required for ADGM entities
- Must file via ADGM Online Registry Solution only
- Registered office must be in ADGM

MANDATORY DOCUMENT ELEMENTS:
- Proper jurisdiction clauses specifying ADGM
- Share capital declaration for companies limited by shares
- Directors' powers and appointment procedures
- Proper execution with signatures and dates

PROHIBITED REFERENCES:
- UAE Federal Law or UAE Commercial Code (use ADGM Companies Regulations 2020)
- UAE Federal Courts or Dubai Courts (use ADGM Courts)
- UAE Ministry of Economy (use ADGM Registration Authority)
- DIFC references (use Abu Dhabi Global Market)

COMPLIANCE OBLIGATIONS:
- Annual confirmation statements required
- Maintain accurate beneficial ownership records
- Keep statutory registers up to date
- File changes within prescribed timeframes`
}
